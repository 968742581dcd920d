package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func newGlassSphere(t *testing.T, transform core.Matrix, index float64) *Shape {
	t.Helper()
	s := NewShape(NewSphere())
	mustSetTransform(t, s, transform)
	s.Material = material.Glass()
	s.Material.RefractiveIndex = index
	return s
}

func TestPrepareComputations_Outside(t *testing.T) {
	r := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))
	s := NewShape(NewSphere())
	i := NewIntersection(4, s)

	comps := PrepareComputations(i, r, Intersections(i))

	if comps.T != 4 || comps.Object != s {
		t.Errorf("Expected t and object copied from the hit, got %+v", comps)
	}
	if !comps.Point.Equals(core.NewPoint(0, 0, -1)) {
		t.Errorf("Expected point (0, 0, -1), got %v", comps.Point)
	}
	if !comps.EyeV.Equals(core.NewVector(0, 0, -1)) {
		t.Errorf("Expected eyev (0, 0, -1), got %v", comps.EyeV)
	}
	if !comps.NormalV.Equals(core.NewVector(0, 0, -1)) {
		t.Errorf("Expected normal (0, 0, -1), got %v", comps.NormalV)
	}
	if comps.Inside {
		t.Error("Expected hit on the outside")
	}
}

func TestPrepareComputations_Inside(t *testing.T) {
	r := core.NewRay(core.NewPoint(0, 0, 0), core.NewVector(0, 0, 1))
	s := NewShape(NewSphere())
	i := NewIntersection(1, s)

	comps := PrepareComputations(i, r, Intersections(i))

	if !comps.Point.Equals(core.NewPoint(0, 0, 1)) {
		t.Errorf("Expected point (0, 0, 1), got %v", comps.Point)
	}
	if !comps.Inside {
		t.Error("Expected hit on the inside")
	}
	if !comps.NormalV.Equals(core.NewVector(0, 0, -1)) {
		t.Errorf("Expected flipped normal (0, 0, -1), got %v", comps.NormalV)
	}
}

func TestPrepareComputations_OffsetPoints(t *testing.T) {
	r := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))

	s := NewShape(NewSphere())
	mustSetTransform(t, s, core.Translation(0, 0, 1))
	i := NewIntersection(5, s)
	comps := PrepareComputations(i, r, Intersections(i))
	if comps.OverPoint.Z >= -core.Epsilon/2 {
		t.Errorf("Expected over point above the surface, got z=%v", comps.OverPoint.Z)
	}
	if comps.Point.Z <= comps.OverPoint.Z {
		t.Errorf("Expected point.z > over_point.z, got %v <= %v", comps.Point.Z, comps.OverPoint.Z)
	}

	glass := newGlassSphere(t, core.Translation(0, 0, 1), 1.5)
	i = NewIntersection(5, glass)
	comps = PrepareComputations(i, r, Intersections(i))
	if comps.UnderPoint.Z <= core.Epsilon/2 {
		t.Errorf("Expected under point below the surface, got z=%v", comps.UnderPoint.Z)
	}
	if comps.Point.Z >= comps.UnderPoint.Z {
		t.Errorf("Expected point.z < under_point.z, got %v >= %v", comps.Point.Z, comps.UnderPoint.Z)
	}
}

func TestPrepareComputations_ReflectV(t *testing.T) {
	s2 := math.Sqrt2 / 2
	plane := NewShape(NewPlane())
	r := core.NewRay(core.NewPoint(0, 1, -1), core.NewVector(0, -s2, s2))
	i := NewIntersection(math.Sqrt2, plane)

	comps := PrepareComputations(i, r, Intersections(i))

	if expected := core.NewVector(0, s2, s2); !comps.ReflectV.Equals(expected) {
		t.Errorf("Expected reflectv %v, got %v", expected, comps.ReflectV)
	}
}

func TestPrepareComputations_RefractiveIndices(t *testing.T) {
	a := newGlassSphere(t, core.Scaling(2, 2, 2), 1.5)
	b := newGlassSphere(t, core.Translation(0, 0, -0.25), 2.0)
	c := newGlassSphere(t, core.Translation(0, 0, 0.25), 2.5)

	r := core.NewRay(core.NewPoint(0, 0, -4), core.NewVector(0, 0, 1))
	xs := Intersections(
		NewIntersection(2, a),
		NewIntersection(2.75, b),
		NewIntersection(3.25, c),
		NewIntersection(4.75, b),
		NewIntersection(5.25, c),
		NewIntersection(6, a),
	)

	expected := []struct{ n1, n2 float64 }{
		{1.0, 1.5},
		{1.5, 2.0},
		{2.0, 2.5},
		{2.5, 2.5},
		{2.5, 1.5},
		{1.5, 1.0},
	}

	for index, want := range expected {
		comps := PrepareComputations(xs[index], r, xs)
		if comps.N1 != want.n1 || comps.N2 != want.n2 {
			t.Errorf("Intersection %d: expected (n1, n2) = (%v, %v), got (%v, %v)",
				index, want.n1, want.n2, comps.N1, comps.N2)
		}
	}
}

func TestPrepareComputations_HitMissingFromList(t *testing.T) {
	s := newGlassSphere(t, core.Identity(), 1.5)
	r := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))

	comps := PrepareComputations(NewIntersection(4, s), r, nil)
	if comps.N1 != 1.0 || comps.N2 != 1.0 {
		t.Errorf("Expected vacuum on both sides, got (%v, %v)", comps.N1, comps.N2)
	}
}

func TestSchlick(t *testing.T) {
	s2 := math.Sqrt2 / 2

	tests := []struct {
		name     string
		ray      core.Ray
		ts       []float64
		hitIndex int
		expected float64
	}{
		{
			name:     "total internal reflection",
			ray:      core.NewRay(core.NewPoint(0, 0, s2), core.NewVector(0, 1, 0)),
			ts:       []float64{-s2, s2},
			hitIndex: 1,
			expected: 1.0,
		},
		{
			name:     "perpendicular viewing angle",
			ray:      core.NewRay(core.NewPoint(0, 0, 0), core.NewVector(0, 1, 0)),
			ts:       []float64{-1, 1},
			hitIndex: 1,
			expected: 0.04,
		},
		{
			name:     "small angle with n2 > n1",
			ray:      core.NewRay(core.NewPoint(0, 0.99, -2), core.NewVector(0, 0, 1)),
			ts:       []float64{1.8589},
			hitIndex: 0,
			expected: 0.48873,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape := newGlassSphere(t, core.Identity(), 1.5)
			xs := make([]Intersection, len(tt.ts))
			for i, v := range tt.ts {
				xs[i] = NewIntersection(v, shape)
			}

			comps := PrepareComputations(xs[tt.hitIndex], tt.ray, xs)
			if got := Schlick(comps); !core.ApproxEqual(got, tt.expected) {
				t.Errorf("Expected reflectance %v, got %v", tt.expected, got)
			}
		})
	}
}
