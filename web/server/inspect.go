package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	Color        string                 `json:"color"` // Shaded pixel color
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// handleInspect casts the ray for one pixel and reports what it hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sc, camera, err := s.prepare(req)
	if err != nil {
		writeError(w, prepareErrorStatus(err), err)
		return
	}

	q := r.URL.Query()
	x, err := parseIntParam(q, "x", 0, 0, camera.HSize-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := parseIntParam(q, "y", 0, 0, camera.VSize-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ray := camera.RayForPixel(x, y)
	resp := InspectResponse{Color: hexColor(sc.World.ColorAt(ray, camera.MaxDepth))}

	xs := sc.World.Intersect(ray)
	hit, ok := geometry.Hit(xs)
	if !ok {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	comps := geometry.PrepareComputations(hit, ray, xs)
	resp.Hit = true
	resp.GeometryType = geometryType(hit.Object.Primitive())
	resp.Point = triple(comps.Point)
	resp.Normal = triple(comps.NormalV)
	resp.Distance = comps.T
	resp.Inside = comps.Inside
	resp.Properties = materialProperties(hit.Object.Material)
	writeJSON(w, http.StatusOK, resp)
}

func geometryType(p geometry.Primitive) string {
	switch p.(type) {
	case *geometry.Sphere:
		return "sphere"
	case *geometry.Plane:
		return "plane"
	case *geometry.Cube:
		return "cube"
	case *geometry.Cylinder:
		return "cylinder"
	case *geometry.Triangle:
		return "triangle"
	default:
		return "unknown"
	}
}

func materialProperties(m material.Material) map[string]interface{} {
	props := map[string]interface{}{
		"color":           hexColor(m.Color),
		"ambient":         m.Ambient,
		"diffuse":         m.Diffuse,
		"specular":        m.Specular,
		"shininess":       m.Shininess,
		"reflective":      m.Reflective,
		"transparency":    m.Transparency,
		"refractiveIndex": m.RefractiveIndex,
	}
	if m.Pattern != nil {
		props["pattern"] = patternType(m.Pattern)
	}
	return props
}

func patternType(p material.Pattern) string {
	switch p.(type) {
	case *material.SolidPattern:
		return "solid"
	case *material.StripePattern:
		return "stripe"
	case *material.GradientPattern:
		return "gradient"
	case *material.RingPattern:
		return "ring"
	case *material.CheckerPattern:
		return "checker"
	default:
		return fmt.Sprintf("%T", p)
	}
}

func hexColor(c core.Color) string {
	rgba := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func triple(t core.Tuple) [3]float64 {
	return [3]float64{t.X, t.Y, t.Z}
}
