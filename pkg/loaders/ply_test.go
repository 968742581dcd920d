package loaders

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

const asciiSquare = `ply
format ascii 1.0
comment unit square in the xy plane
element vertex 4
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
1 1 0
0 1 0
4 0 1 2 3
`

// createTestPLY builds a binary square with extra per-vertex properties
// and a trailing element that the loader has to skip
func createTestPLY(t *testing.T, order binary.ByteOrder, format string) []byte {
	t.Helper()
	var buf bytes.Buffer

	buf.WriteString("ply\n")
	buf.WriteString("format " + format + " 1.0\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")
	buf.WriteString("property float nx\n")
	buf.WriteString("property uchar red\n")
	buf.WriteString("element face 2\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("property ushort material\n")
	buf.WriteString("element edge 1\n")
	buf.WriteString("property int vertex1\n")
	buf.WriteString("property int vertex2\n")
	buf.WriteString("end_header\n")

	vertices := []struct {
		x, y, z, nx float32
		r           uint8
	}{
		{0, 0, 0, 0, 255},
		{1, 0, 0, 0, 0},
		{1, 1, 0, 0, 0},
		{0, 1, 0, 0, 255},
	}
	for _, v := range vertices {
		binary.Write(&buf, order, v.x)
		binary.Write(&buf, order, v.y)
		binary.Write(&buf, order, v.z)
		binary.Write(&buf, order, v.nx)
		binary.Write(&buf, order, v.r)
	}

	faces := [][3]int32{{0, 1, 2}, {0, 2, 3}}
	for _, f := range faces {
		binary.Write(&buf, order, uint8(3))
		binary.Write(&buf, order, f)
		binary.Write(&buf, order, uint16(7))
	}

	binary.Write(&buf, order, int32(0))
	binary.Write(&buf, order, int32(1))
	return buf.Bytes()
}

func TestDecodePLY_Formats(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		faces     int
		triangles int
	}{
		{"ascii quad", []byte(asciiSquare), 1, 2},
		{"binary little endian", createTestPLY(t, binary.LittleEndian, "binary_little_endian"), 2, 2},
		{"binary big endian", createTestPLY(t, binary.BigEndian, "binary_big_endian"), 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := DecodePLY(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("DecodePLY failed: %v", err)
			}
			if len(mesh.Vertices) != 4 {
				t.Fatalf("Expected 4 vertices, got %d", len(mesh.Vertices))
			}
			if !mesh.Vertices[2].Equals(core.NewPoint(1, 1, 0)) {
				t.Errorf("Expected vertex 2 at (1, 1, 0), got %v", mesh.Vertices[2])
			}
			if len(mesh.Faces) != tt.faces {
				t.Errorf("Expected %d faces, got %d", tt.faces, len(mesh.Faces))
			}

			tris := mesh.Triangles()
			if len(tris) != tt.triangles {
				t.Fatalf("Expected %d triangles, got %d", tt.triangles, len(tris))
			}
			second := tris[1]
			if !second[0].Equals(core.NewPoint(0, 0, 0)) || !second[2].Equals(core.NewPoint(0, 1, 0)) {
				t.Errorf("Expected second triangle fanned from vertex 0 to vertex 3, got %v", second)
			}
		})
	}
}

func TestMeshTriangles_DropsDegenerate(t *testing.T) {
	mesh := &Mesh{
		Vertices: []core.Tuple{
			core.NewPoint(0, 0, 0),
			core.NewPoint(1, 0, 0),
			core.NewPoint(2, 0, 0),
			core.NewPoint(0, 1, 0),
		},
		Faces: [][]int{{0, 1, 2}, {0, 1, 3}},
	}

	tris := mesh.Triangles()
	if len(tris) != 1 {
		t.Fatalf("Expected 1 triangle after dropping the collinear face, got %d", len(tris))
	}
}

func TestDecodePLY_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing magic", "format ascii 1.0\nend_header\n"},
		{"unterminated header", "ply\nformat ascii 1.0\nelement vertex 1\n"},
		{"unsupported format", "ply\nformat utf8 1.0\nend_header\n"},
		{"unknown type", "ply\nformat ascii 1.0\nelement vertex 1\nproperty quad x\nend_header\n"},
		{"property before element", "ply\nformat ascii 1.0\nproperty float x\nend_header\n"},
		{"vertex without z", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nend_header\n0 0\n"},
		{"bad number", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 zero 0\n"},
		{"truncated body", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n"},
		{"index out of range", strings.Replace(asciiSquare, "4 0 1 2 3", "3 0 1 9", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePLY(strings.NewReader(tt.data))
			if !errors.Is(err, ErrInvalidPLY) {
				t.Errorf("Expected ErrInvalidPLY, got %v", err)
			}
		})
	}
}

func TestLoadPLY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.ply")
	if err := os.WriteFile(path, []byte(asciiSquare), 0o644); err != nil {
		t.Fatal(err)
	}

	mesh, err := LoadPLY(path)
	if err != nil {
		t.Fatalf("LoadPLY failed: %v", err)
	}
	if len(mesh.Vertices) != 4 {
		t.Errorf("Expected 4 vertices, got %d", len(mesh.Vertices))
	}

	if _, err := LoadPLY(filepath.Join(t.TempDir(), "missing.ply")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist for a missing file, got %v", err)
	}
}
