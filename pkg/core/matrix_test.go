package core

import (
	"errors"
	"math"
	"testing"
)

func TestMatrix_NewMatrixLayout(t *testing.T) {
	m := NewMatrix([4][4]float64{
		{1, 2, 3, 4},
		{5.5, 6.5, 7.5, 8.5},
		{9, 10, 11, 12},
		{13.5, 14.5, 15.5, 16.5},
	})

	checks := []struct {
		row, col int
		expected float64
	}{
		{0, 0, 1}, {0, 3, 4}, {1, 0, 5.5}, {1, 2, 7.5}, {2, 2, 11}, {3, 0, 13.5}, {3, 2, 15.5},
	}
	for _, c := range checks {
		if got := m.At(c.row, c.col); got != c.expected {
			t.Errorf("At(%d,%d): expected %v, got %v", c.row, c.col, c.expected, got)
		}
	}
}

func TestMatrix_Multiply(t *testing.T) {
	a := NewMatrix([4][4]float64{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 8, 7, 6},
		{5, 4, 3, 2},
	})
	b := NewMatrix([4][4]float64{
		{-2, 1, 2, 3},
		{3, 2, 1, -1},
		{4, 3, 6, 5},
		{1, 2, 7, 8},
	})
	expected := NewMatrix([4][4]float64{
		{20, 22, 50, 48},
		{44, 54, 114, 108},
		{40, 58, 110, 102},
		{16, 26, 46, 42},
	})

	if got := a.Multiply(b); !got.Equals(expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	tuple := Tuple{1, 2, 3, 1}
	m := NewMatrix([4][4]float64{
		{1, 2, 3, 4},
		{2, 4, 4, 2},
		{8, 6, 4, 1},
		{0, 0, 0, 1},
	})
	if got := m.MultiplyTuple(tuple); !got.Equals(Tuple{18, 24, 33, 1}) {
		t.Errorf("Expected (18, 24, 33, 1), got %v", got)
	}
}

func TestMatrix_TransposeAndDeterminant(t *testing.T) {
	m := NewMatrix([4][4]float64{
		{0, 9, 3, 0},
		{9, 8, 0, 8},
		{1, 8, 5, 3},
		{0, 0, 5, 8},
	})
	expected := NewMatrix([4][4]float64{
		{0, 9, 1, 0},
		{9, 8, 8, 0},
		{3, 0, 5, 5},
		{0, 8, 3, 8},
	})
	if got := m.Transpose(); !got.Equals(expected) {
		t.Errorf("Expected transpose %v, got %v", expected, got)
	}

	if !Identity().Transpose().Equals(Identity()) {
		t.Error("Expected transpose of identity to be identity")
	}

	d := NewMatrix([4][4]float64{
		{-2, -8, 3, 5},
		{-3, 1, 7, 3},
		{1, 2, -9, 6},
		{-6, 7, 7, -9},
	})
	if got := d.Determinant(); !ApproxEqual(got, -4071) {
		t.Errorf("Expected determinant -4071, got %v", got)
	}
}

func TestMatrix_Inverse(t *testing.T) {
	a := NewMatrix([4][4]float64{
		{3, -9, 7, 3},
		{3, -8, 2, -9},
		{-4, 4, 4, 1},
		{-6, 5, -1, 1},
	})
	b := NewMatrix([4][4]float64{
		{8, 2, 2, 2},
		{3, -1, 7, 0},
		{7, 0, 5, 4},
		{6, -2, 0, 5},
	})

	inv, err := b.Inverse()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := a.Multiply(b).Multiply(inv); !got.Equals(a) {
		t.Errorf("Expected C × inverse(B) = A, got %v", got)
	}

	singular := NewMatrix([4][4]float64{
		{-4, 2, -2, -3},
		{9, 6, 2, 6},
		{0, -5, 1, -5},
		{0, 0, 0, 0},
	})
	if singular.IsInvertible() {
		t.Error("Expected singular matrix to be reported as non-invertible")
	}
	if _, err := singular.Inverse(); !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("Expected ErrSingularMatrix, got %v", err)
	}
}

func TestMatrix_Transformations(t *testing.T) {
	tests := []struct {
		name     string
		m        Matrix
		input    Tuple
		expected Tuple
	}{
		{"translation moves points", Translation(5, -3, 2), NewPoint(-3, 4, 5), NewPoint(2, 1, 7)},
		{"translation ignores vectors", Translation(5, -3, 2), NewVector(-3, 4, 5), NewVector(-3, 4, 5)},
		{"scaling a point", Scaling(2, 3, 4), NewPoint(-4, 6, 8), NewPoint(-8, 18, 32)},
		{"scaling a vector", Scaling(2, 3, 4), NewVector(-4, 6, 8), NewVector(-8, 18, 32)},
		{"reflection is negative scaling", Scaling(-1, 1, 1), NewPoint(2, 3, 4), NewPoint(-2, 3, 4)},
		{"half quarter about x", RotationX(math.Pi / 4), NewPoint(0, 1, 0), NewPoint(0, math.Sqrt2/2, math.Sqrt2/2)},
		{"full quarter about x", RotationX(math.Pi / 2), NewPoint(0, 1, 0), NewPoint(0, 0, 1)},
		{"half quarter about y", RotationY(math.Pi / 4), NewPoint(0, 0, 1), NewPoint(math.Sqrt2/2, 0, math.Sqrt2/2)},
		{"full quarter about y", RotationY(math.Pi / 2), NewPoint(0, 0, 1), NewPoint(1, 0, 0)},
		{"half quarter about z", RotationZ(math.Pi / 4), NewPoint(0, 1, 0), NewPoint(-math.Sqrt2/2, math.Sqrt2/2, 0)},
		{"full quarter about z", RotationZ(math.Pi / 2), NewPoint(0, 1, 0), NewPoint(-1, 0, 0)},
		{"shear x by y", Shearing(1, 0, 0, 0, 0, 0), NewPoint(2, 3, 4), NewPoint(5, 3, 4)},
		{"shear x by z", Shearing(0, 1, 0, 0, 0, 0), NewPoint(2, 3, 4), NewPoint(6, 3, 4)},
		{"shear y by x", Shearing(0, 0, 1, 0, 0, 0), NewPoint(2, 3, 4), NewPoint(2, 5, 4)},
		{"shear y by z", Shearing(0, 0, 0, 1, 0, 0), NewPoint(2, 3, 4), NewPoint(2, 7, 4)},
		{"shear z by x", Shearing(0, 0, 0, 0, 1, 0), NewPoint(2, 3, 4), NewPoint(2, 3, 6)},
		{"shear z by y", Shearing(0, 0, 0, 0, 0, 1), NewPoint(2, 3, 4), NewPoint(2, 3, 7)},
		{
			name:     "chained transforms apply in order",
			m:        Chain(RotationX(math.Pi/2), Scaling(5, 5, 5), Translation(10, 5, 7)),
			input:    NewPoint(1, 0, 1),
			expected: NewPoint(15, 0, 7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.MultiplyTuple(tt.input); !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestViewTransform(t *testing.T) {
	tests := []struct {
		name     string
		from     Tuple
		to       Tuple
		up       Tuple
		expected Matrix
	}{
		{
			name:     "default orientation",
			from:     NewPoint(0, 0, 0),
			to:       NewPoint(0, 0, -1),
			up:       NewVector(0, 1, 0),
			expected: Identity(),
		},
		{
			name:     "looking in positive z",
			from:     NewPoint(0, 0, 0),
			to:       NewPoint(0, 0, 1),
			up:       NewVector(0, 1, 0),
			expected: Scaling(-1, 1, -1),
		},
		{
			name:     "moves the world",
			from:     NewPoint(0, 0, 8),
			to:       NewPoint(0, 0, 0),
			up:       NewVector(0, 1, 0),
			expected: Translation(0, 0, -8),
		},
		{
			name: "arbitrary view",
			from: NewPoint(1, 3, 2),
			to:   NewPoint(4, -2, 8),
			up:   NewVector(1, 1, 0),
			expected: NewMatrix([4][4]float64{
				{-0.50709, 0.50709, 0.67612, -2.36643},
				{0.76772, 0.60609, 0.12122, -2.82843},
				{-0.35857, 0.59761, -0.71714, 0.00000},
				{0.00000, 0.00000, 0.00000, 1.00000},
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ViewTransform(tt.from, tt.to, tt.up); !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
