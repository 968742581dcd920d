package geometry

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPlane_LocalIntersect(t *testing.T) {
	plane := NewPlane()

	tests := []struct {
		name      string
		origin    core.Tuple
		direction core.Tuple
		expected  []float64
	}{
		{"parallel", core.NewPoint(0, 10, 0), core.NewVector(0, 0, 1), nil},
		{"coplanar", core.NewPoint(0, 0, 0), core.NewVector(0, 0, 1), nil},
		{"nearly parallel", core.NewPoint(0, 1, 0), core.NewVector(1, 1e-7, 0), nil},
		{"from above", core.NewPoint(0, 1, 0), core.NewVector(0, -1, 0), []float64{1}},
		{"from below", core.NewPoint(0, -1, 0), core.NewVector(0, 1, 0), []float64{1}},
		{"behind", core.NewPoint(0, 1, 0), core.NewVector(0, 1, 0), []float64{-1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := plane.LocalIntersect(core.NewRay(tt.origin, tt.direction))
			assertRoots(t, got, tt.expected)
		})
	}
}

func TestPlane_LocalNormalAt(t *testing.T) {
	plane := NewPlane()
	for _, p := range []core.Tuple{core.NewPoint(0, 0, 0), core.NewPoint(10, 0, -10), core.NewPoint(-5, 0, 150)} {
		if got := plane.LocalNormalAt(p); !got.Equals(core.NewVector(0, 1, 0)) {
			t.Errorf("Normal at %v: expected (0, 1, 0), got %v", p, got)
		}
	}
}
