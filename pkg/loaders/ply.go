package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidPLY is returned for malformed or unsupported PLY data
var ErrInvalidPLY = errors.New("invalid PLY data")

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is one element block, such as vertex or face, in file order
type PLYElement struct {
	Name  string
	Count int
	Props []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name      string
	Type      string // Scalar type, or the item type of a list
	IsList    bool
	CountType string // For list properties, the type of the length prefix
}

func (e PLYElement) index(name string) int {
	for i, p := range e.Props {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Mesh is the polygon data read from a PLY file
type Mesh struct {
	Vertices []core.Tuple
	Faces    [][]int // Vertex indices per polygon
}

// Triangles fans each polygon into triangles. Faces with zero area are dropped.
func (m *Mesh) Triangles() [][3]core.Tuple {
	var tris [][3]core.Tuple
	for _, f := range m.Faces {
		for i := 1; i+1 < len(f); i++ {
			a, b, c := m.Vertices[f[0]], m.Vertices[f[i]], m.Vertices[f[i+1]]
			if b.Subtract(a).Cross(c.Subtract(a)).Magnitude() == 0 {
				continue
			}
			tris = append(tris, [3]core.Tuple{a, b, c})
		}
	}
	return tris
}

var plyTypeSizes = map[string]int{
	"char": 1, "int8": 1, "uchar": 1, "uint8": 1,
	"short": 2, "int16": 2, "ushort": 2, "uint16": 2,
	"int": 4, "int32": 4, "uint": 4, "uint32": 4,
	"float": 4, "float32": 4, "double": 8, "float64": 8,
}

// LoadPLY loads a PLY file from disk
func LoadPLY(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := DecodePLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mesh, nil
}

// DecodePLY reads vertex positions and faces from PLY data in any of the
// three standard encodings. Other elements and properties are skipped.
func DecodePLY(r io.Reader) (*Mesh, error) {
	br := bufio.NewReader(r)
	header, err := parsePLYHeader(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPLY, err)
	}

	var values valueReader
	switch header.Format {
	case "ascii":
		values = &asciiReader{r: br}
	case "binary_little_endian":
		values = &binaryReader{r: br, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryReader{r: br, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidPLY, header.Format)
	}

	mesh := &Mesh{}
	for _, el := range header.Elements {
		if err := readElement(values, el, mesh); err != nil {
			return nil, fmt.Errorf("%w: element %s: %v", ErrInvalidPLY, el.Name, err)
		}
	}

	for i, f := range mesh.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= len(mesh.Vertices) {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidPLY, i, idx, len(mesh.Vertices))
			}
		}
	}
	return mesh, nil
}

// parsePLYHeader consumes the header through end_header, leaving r at the
// first byte of element data
func parsePLYHeader(r *bufio.Reader) (*PLYHeader, error) {
	magic, err := r.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, errors.New("missing ply magic number")
	}

	header := &PLYHeader{}
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("unterminated header: %v", err)
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("malformed format line %q", strings.TrimSpace(line))
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("malformed element line %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, errors.New("property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %v", err)
			}
			el := &header.Elements[len(header.Elements)-1]
			el.Props = append(el.Props, prop)
		default:
			return nil, fmt.Errorf("unknown header keyword %q", parts[0])
		}
	}
}

func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) > 0 && parts[0] == "list" {
		if len(parts) != 4 {
			return PLYProperty{}, fmt.Errorf("list property needs count type, item type and name")
		}
		prop := PLYProperty{IsList: true, CountType: parts[1], Type: parts[2], Name: parts[3]}
		if plyTypeSizes[prop.CountType] == 0 || plyTypeSizes[prop.Type] == 0 {
			return PLYProperty{}, fmt.Errorf("unknown type in list %s", prop.Name)
		}
		return prop, nil
	}

	if len(parts) != 2 {
		return PLYProperty{}, fmt.Errorf("property needs type and name")
	}
	if plyTypeSizes[parts[0]] == 0 {
		return PLYProperty{}, fmt.Errorf("unknown type %q", parts[0])
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

func readElement(values valueReader, el PLYElement, mesh *Mesh) error {
	xi, yi, zi := el.index("x"), el.index("y"), el.index("z")
	if el.Name == "vertex" && (xi < 0 || yi < 0 || zi < 0) {
		return errors.New("vertex element needs x, y and z")
	}

	for i := 0; i < el.Count; i++ {
		var pos [3]float64
		var face []int

		for j, prop := range el.Props {
			if prop.IsList {
				n, err := values.value(prop.CountType)
				if err != nil {
					return err
				}
				if n < 0 {
					return fmt.Errorf("negative list length %v", n)
				}
				items := make([]int, int(n))
				for k := range items {
					v, err := values.value(prop.Type)
					if err != nil {
						return err
					}
					items[k] = int(v)
				}
				if prop.Name == "vertex_indices" || prop.Name == "vertex_index" {
					face = items
				}
				continue
			}

			v, err := values.value(prop.Type)
			if err != nil {
				return err
			}
			switch j {
			case xi:
				pos[0] = v
			case yi:
				pos[1] = v
			case zi:
				pos[2] = v
			}
		}

		switch el.Name {
		case "vertex":
			mesh.Vertices = append(mesh.Vertices, core.NewPoint(pos[0], pos[1], pos[2]))
		case "face":
			if len(face) >= 3 {
				mesh.Faces = append(mesh.Faces, face)
			}
		}
	}
	return nil
}

// valueReader reads one scalar of a PLY type as float64
type valueReader interface {
	value(typ string) (float64, error)
}

type asciiReader struct {
	r *bufio.Reader
}

func (a *asciiReader) value(typ string) (float64, error) {
	var tok string
	if _, err := fmt.Fscan(a.r, &tok); err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", typ, tok)
	}
	return v, nil
}

type binaryReader struct {
	r     *bufio.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryReader) value(typ string) (float64, error) {
	buf := b.buf[:plyTypeSizes[typ]]
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return 0, err
	}

	switch typ {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default:
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}
