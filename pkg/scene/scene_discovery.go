package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name, usable with Load
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "toml"
	FilePath    string `json:"filePath"`    // Path to scene file (toml type only)
}

type builtinScene struct {
	info  SceneInfo
	build func() (*Scene, error)
}

var builtinScenes = []builtinScene{
	{
		info:  SceneInfo{Name: "default", DisplayName: "Default", Description: "Two nested spheres and one light"},
		build: NewDefaultScene,
	},
	{
		info:  SceneInfo{Name: "three-spheres", DisplayName: "Three Spheres", Description: "Checkered floor and three grouped spheres"},
		build: NewThreeSpheresScene,
	},
	{
		info:  SceneInfo{Name: "hexagon", DisplayName: "Hexagon", Description: "Six rotated sides built in the scene graph"},
		build: NewHexagonScene,
	},
	{
		info:  SceneInfo{Name: "transparent-cube", DisplayName: "Transparent Cube", Description: "Refracting cube over a ring floor"},
		build: NewTransparentCubeScene,
	},
	{
		info:  SceneInfo{Name: "mirrors", DisplayName: "Mirrors", Description: "Sphere between two facing mirrors"},
		build: NewMirrorsScene,
	},
}

// ListBuiltinScenes returns the scenes compiled into the binary
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.ID = "builtin:" + info.Name
		info.Type = "builtin"
		scenes = append(scenes, info)
	}
	return scenes
}

// ListSceneFiles scans dir for *.toml scene files. A missing directory
// yields an empty list.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := parseSceneMetadata(filePath)
		if err != nil {
			// Skip unreadable files so one bad scene does not hide the rest
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ListScenes returns the built-in scenes followed by the scene files in dir
func ListScenes(dir string) ([]SceneInfo, error) {
	files, err := ListSceneFiles(dir)
	if err != nil {
		return nil, err
	}
	return append(ListBuiltinScenes(), files...), nil
}

// parseSceneMetadata reads only the top-level name and description keys
func parseSceneMetadata(filePath string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:          "toml:" + base,
		Name:        filePath,
		DisplayName: titleCase(base),
		Type:        "toml",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}

	var meta struct {
		Name        string `toml:"name"`
		Description string `toml:"description"`
	}
	if err := toml.Unmarshal(data, &meta); err != nil {
		return info, fmt.Errorf("%w: %s: %v", ErrInvalidSceneFile, filePath, err)
	}
	if meta.Name != "" {
		info.DisplayName = meta.Name
	}
	info.Description = meta.Description
	return info, nil
}

// Get builds a built-in scene by name
func Get(name string) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.Name == name {
			return b.build()
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// Load builds a built-in scene by name or reads a .toml scene file by path
func Load(nameOrPath string) (*Scene, error) {
	if strings.HasSuffix(nameOrPath, ".toml") {
		return LoadFile(nameOrPath)
	}
	return Get(nameOrPath)
}

// titleCase converts "three-spheres" or "three_spheres" to "Three Spheres"
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}
