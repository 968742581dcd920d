package core

import (
	"bytes"
	"strings"
	"testing"
)

func TestRay_Position(t *testing.T) {
	r := NewRay(NewPoint(2, 3, 4), NewVector(1, 0, 0))

	tests := []struct {
		t        float64
		expected Tuple
	}{
		{0, NewPoint(2, 3, 4)},
		{1, NewPoint(3, 3, 4)},
		{-1, NewPoint(1, 3, 4)},
		{2.5, NewPoint(4.5, 3, 4)},
	}
	for _, tt := range tests {
		if got := r.Position(tt.t); !got.Equals(tt.expected) {
			t.Errorf("Position(%v): expected %v, got %v", tt.t, tt.expected, got)
		}
	}
}

func TestRay_Transform(t *testing.T) {
	r := NewRay(NewPoint(1, 2, 3), NewVector(0, 1, 0))

	translated := r.Transform(Translation(3, 4, 5))
	if !translated.Origin.Equals(NewPoint(4, 6, 8)) || !translated.Direction.Equals(NewVector(0, 1, 0)) {
		t.Errorf("Translation: got %+v", translated)
	}

	scaled := r.Transform(Scaling(2, 3, 4))
	if !scaled.Origin.Equals(NewPoint(2, 6, 12)) || !scaled.Direction.Equals(NewVector(0, 3, 0)) {
		t.Errorf("Scaling: got %+v", scaled)
	}

	if !r.Origin.Equals(NewPoint(1, 2, 3)) {
		t.Error("Transform must not modify the original ray")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "info")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	logger.Debugf("hidden %d", 1)
	logger.Infof("rendered %d tiles", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Debug message should be filtered at info level, got %q", out)
	}
	if !strings.Contains(out, "rendered 4 tiles") {
		t.Errorf("Expected info message in output, got %q", out)
	}

	if _, err := NewLogger(&buf, "loud"); err == nil {
		t.Error("Expected error for unknown log level")
	}
}
