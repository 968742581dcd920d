package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// SceneFile is the TOML layout of a scene description
type SceneFile struct {
	Name        string       `toml:"name"`
	Description string       `toml:"description"`
	Background  *[3]float64  `toml:"background"`
	Camera      CameraFile   `toml:"camera"`
	Light       *LightFile   `toml:"light"`
	Objects     []ObjectFile `toml:"objects"`
	Groups      []GroupFile  `toml:"groups"`

	dir string // Base for relative mesh paths
}

// CameraFile describes the camera. FieldOfView is in degrees.
type CameraFile struct {
	Width       int         `toml:"width"`
	Height      int         `toml:"height"`
	FieldOfView float64     `toml:"fov"`
	From        *[3]float64 `toml:"from"`
	To          *[3]float64 `toml:"to"`
	Up          *[3]float64 `toml:"up"`
}

// LightFile describes the point light
type LightFile struct {
	Position  [3]float64  `toml:"position"`
	Intensity *[3]float64 `toml:"intensity"`
}

// TransformFile is one step of a transform chain, applied in file order.
// Rotation angles are in degrees.
type TransformFile struct {
	Type string    `toml:"type"` // translate, scale, rotate-x, rotate-y, rotate-z, shear
	Args []float64 `toml:"args"`
}

// ObjectFile describes a single shape
type ObjectFile struct {
	Type       string          `toml:"type"` // sphere, plane, cube, cylinder, triangle, mesh
	Transforms []TransformFile `toml:"transforms"`
	Material   *MaterialFile   `toml:"material"`

	// Cylinder only
	Minimum *float64 `toml:"minimum"`
	Maximum *float64 `toml:"maximum"`
	Closed  bool     `toml:"closed"`

	// Triangle only
	Points [][3]float64 `toml:"points"`

	// Mesh only: PLY file, relative to the scene file
	File string `toml:"file"`
}

// MaterialFile overrides fields of the default material
type MaterialFile struct {
	Color           *[3]float64  `toml:"color"`
	Ambient         *float64     `toml:"ambient"`
	Diffuse         *float64     `toml:"diffuse"`
	Specular        *float64     `toml:"specular"`
	Shininess       *float64     `toml:"shininess"`
	Reflective      *float64     `toml:"reflective"`
	Transparency    *float64     `toml:"transparency"`
	RefractiveIndex *float64     `toml:"refractive_index"`
	Pattern         *PatternFile `toml:"pattern"`
}

// PatternFile describes a two-color pattern
type PatternFile struct {
	Type       string          `toml:"type"` // stripe, gradient, ring, checker
	A          [3]float64      `toml:"a"`
	B          [3]float64      `toml:"b"`
	Transforms []TransformFile `toml:"transforms"`
}

// GroupFile is a transform node with shapes and nested groups beneath it
type GroupFile struct {
	Transforms []TransformFile `toml:"transforms"`
	Objects    []ObjectFile    `toml:"objects"`
	Groups     []GroupFile     `toml:"groups"`
}

// LoadFile reads a TOML scene description from disk
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene file: %w", err)
	}

	s, err := decode(bytes.NewReader(data), filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Decode parses a TOML scene description and builds the scene
func Decode(r io.Reader) (*Scene, error) {
	return decode(r, ".")
}

func decode(r io.Reader, dir string) (*Scene, error) {
	file := SceneFile{dir: dir}
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSceneFile, err)
	}
	return file.Build()
}

// Build converts the file description into a renderable scene
func (f SceneFile) Build() (*Scene, error) {
	w := NewWorld()
	if f.Background != nil {
		w.Background = colorFrom(*f.Background)
	}
	if f.Light != nil {
		intensity := core.White
		if f.Light.Intensity != nil {
			intensity = colorFrom(*f.Light.Intensity)
		}
		w.Light = material.NewPointLight(pointFrom(f.Light.Position), intensity)
	}

	for i, o := range f.Objects {
		if o.Type == "mesh" {
			if err := o.buildMesh(w.Graph, geometry.RootID, f.dir); err != nil {
				return nil, fmt.Errorf("%w: objects[%d]: %w", ErrInvalidSceneFile, i, err)
			}
			continue
		}
		s, err := o.build()
		if err != nil {
			return nil, fmt.Errorf("%w: objects[%d]: %w", ErrInvalidSceneFile, i, err)
		}
		w.AddObjects(s)
	}

	for i, g := range f.Groups {
		if err := g.build(w.Graph, geometry.RootID, f.dir); err != nil {
			return nil, fmt.Errorf("%w: groups[%d]: %w", ErrInvalidSceneFile, i, err)
		}
	}

	camera, err := f.Camera.build()
	if err != nil {
		return nil, fmt.Errorf("%w: camera: %w", ErrInvalidSceneFile, err)
	}

	return &Scene{Name: f.Name, World: w, Camera: camera}, nil
}

func (c CameraFile) build() (CameraConfig, error) {
	cfg := DefaultCameraConfig()
	if c.Width != 0 {
		cfg.Width = c.Width
	}
	if c.Height != 0 {
		cfg.Height = c.Height
	}
	if c.FieldOfView != 0 {
		cfg.FieldOfView = c.FieldOfView * math.Pi / 180
	}
	if c.From != nil {
		cfg.From = pointFrom(*c.From)
	}
	if c.To != nil {
		cfg.To = pointFrom(*c.To)
	}
	if c.Up != nil {
		cfg.Up = vectorFrom(*c.Up)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FieldOfView <= 0 || cfg.FieldOfView >= math.Pi {
		return cfg, fmt.Errorf("field of view must be between 0 and 180 degrees")
	}
	if cfg.From.Subtract(cfg.To).Magnitude() == 0 {
		return cfg, fmt.Errorf("from and to must differ")
	}
	return cfg, nil
}

func (g GroupFile) build(graph *geometry.Group, parent int, dir string) error {
	transform, err := buildTransform(g.Transforms)
	if err != nil {
		return err
	}
	id, err := graph.AddMatrix(transform, parent)
	if err != nil {
		return err
	}

	for i, o := range g.Objects {
		if o.Type == "mesh" {
			if err := o.buildMesh(graph, id, dir); err != nil {
				return fmt.Errorf("objects[%d]: %w", i, err)
			}
			continue
		}
		s, err := o.build()
		if err != nil {
			return fmt.Errorf("objects[%d]: %w", i, err)
		}
		if _, err := graph.AddShape(s, id); err != nil {
			return err
		}
	}
	for i, child := range g.Groups {
		if err := child.build(graph, id, dir); err != nil {
			return fmt.Errorf("groups[%d]: %w", i, err)
		}
	}
	return nil
}

func (o ObjectFile) build() (*geometry.Shape, error) {
	var p geometry.Primitive
	switch o.Type {
	case "sphere":
		p = geometry.NewSphere()
	case "plane":
		p = geometry.NewPlane()
	case "cube":
		p = geometry.NewCube()
	case "cylinder":
		c := geometry.NewCylinder()
		if o.Minimum != nil {
			c.Minimum = *o.Minimum
		}
		if o.Maximum != nil {
			c.Maximum = *o.Maximum
		}
		c.Closed = o.Closed
		p = c
	case "triangle":
		if len(o.Points) != 3 {
			return nil, fmt.Errorf("triangle needs 3 points, got %d", len(o.Points))
		}
		p = geometry.NewTriangle(pointFrom(o.Points[0]), pointFrom(o.Points[1]), pointFrom(o.Points[2]))
	default:
		return nil, fmt.Errorf("unknown object type %q", o.Type)
	}

	transform, err := buildTransform(o.Transforms)
	if err != nil {
		return nil, err
	}
	s, err := transformed(p, transform)
	if err != nil {
		return nil, err
	}

	if o.Material != nil {
		if err := o.Material.apply(&s.Material); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// buildMesh loads a PLY mesh and adds its triangles under a transform node
// holding the object's transforms. Every triangle shares the material.
func (o ObjectFile) buildMesh(graph *geometry.Group, parent int, dir string) error {
	if o.File == "" {
		return errors.New("mesh needs a file")
	}
	path := o.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	mesh, err := loaders.LoadPLY(path)
	if err != nil {
		return err
	}

	m := material.DefaultMaterial()
	if o.Material != nil {
		if err := o.Material.apply(&m); err != nil {
			return err
		}
	}

	transform, err := buildTransform(o.Transforms)
	if err != nil {
		return err
	}
	id, err := graph.AddMatrix(transform, parent)
	if err != nil {
		return err
	}

	for _, tri := range mesh.Triangles() {
		s := geometry.NewShape(geometry.NewTriangle(tri[0], tri[1], tri[2]))
		s.Material = m
		if _, err := graph.AddShape(s, id); err != nil {
			return err
		}
	}
	return nil
}

func (mf MaterialFile) apply(m *material.Material) error {
	if mf.Color != nil {
		m.Color = colorFrom(*mf.Color)
	}
	setIf(&m.Ambient, mf.Ambient)
	setIf(&m.Diffuse, mf.Diffuse)
	setIf(&m.Specular, mf.Specular)
	setIf(&m.Shininess, mf.Shininess)
	setIf(&m.Reflective, mf.Reflective)
	setIf(&m.Transparency, mf.Transparency)
	setIf(&m.RefractiveIndex, mf.RefractiveIndex)

	if m.RefractiveIndex <= 0 {
		return fmt.Errorf("refractive index must be positive, got %v", m.RefractiveIndex)
	}

	if mf.Pattern != nil {
		p, err := mf.Pattern.build()
		if err != nil {
			return err
		}
		m.Pattern = p
	}
	return nil
}

func (pf PatternFile) build() (material.Pattern, error) {
	a, b := colorFrom(pf.A), colorFrom(pf.B)

	transform, err := buildTransform(pf.Transforms)
	if err != nil {
		return nil, err
	}

	var p interface {
		material.Pattern
		SetTransform(core.Matrix) error
	}
	switch pf.Type {
	case "stripe":
		p = material.NewStripePattern(a, b)
	case "gradient":
		p = material.NewGradientPattern(a, b)
	case "ring":
		p = material.NewRingPattern(a, b)
	case "checker":
		p = material.NewCheckerPattern(a, b)
	default:
		return nil, fmt.Errorf("unknown pattern type %q", pf.Type)
	}

	if err := p.SetTransform(transform); err != nil {
		return nil, err
	}
	return p, nil
}

// buildTransform chains transform steps in the order they are listed
func buildTransform(steps []TransformFile) (core.Matrix, error) {
	matrices := make([]core.Matrix, 0, len(steps))
	for i, step := range steps {
		m, err := step.matrix()
		if err != nil {
			return core.Matrix{}, fmt.Errorf("transforms[%d]: %w", i, err)
		}
		matrices = append(matrices, m)
	}
	return core.Chain(matrices...), nil
}

func (t TransformFile) matrix() (core.Matrix, error) {
	want := map[string]int{
		"translate": 3,
		"scale":     3,
		"rotate-x":  1,
		"rotate-y":  1,
		"rotate-z":  1,
		"shear":     6,
	}
	n, ok := want[t.Type]
	if !ok {
		return core.Matrix{}, fmt.Errorf("unknown transform type %q", t.Type)
	}
	if len(t.Args) != n {
		return core.Matrix{}, fmt.Errorf("%s needs %d args, got %d", t.Type, n, len(t.Args))
	}

	a := t.Args
	switch t.Type {
	case "translate":
		return core.Translation(a[0], a[1], a[2]), nil
	case "scale":
		return core.Scaling(a[0], a[1], a[2]), nil
	case "rotate-x":
		return core.RotationX(a[0] * math.Pi / 180), nil
	case "rotate-y":
		return core.RotationY(a[0] * math.Pi / 180), nil
	case "rotate-z":
		return core.RotationZ(a[0] * math.Pi / 180), nil
	default:
		return core.Shearing(a[0], a[1], a[2], a[3], a[4], a[5]), nil
	}
}

func setIf(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func pointFrom(v [3]float64) core.Tuple {
	return core.NewPoint(v[0], v[1], v[2])
}

func vectorFrom(v [3]float64) core.Tuple {
	return core.NewVector(v[0], v[1], v[2])
}

func colorFrom(v [3]float64) core.Color {
	return core.NewColor(v[0], v[1], v[2])
}
