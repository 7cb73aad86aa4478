package editorconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// EditorConfigPath is the path to the editor config file, relative to the process working directory.
const EditorConfigPath = "config/editor.json"

// EditorPrefs holds editor-only preferences (overlays, grid, scaling lock, etc.). Persisted across runs.
// Scene data is separate and handled by sceneio.
type EditorPrefs struct {
	ShowFPS        bool   `json:"show_fps"`
	GridVisible    bool   `json:"grid_visible"`
	ShowHints      bool   `json:"show_hints"`
	UniformScaling bool   `json:"uniform_scaling"`
	ScenePath      string `json:"scene_path,omitempty"`
}

// Default returns default editor preferences (overlays off, grid and hints on).
func Default() EditorPrefs {
	return EditorPrefs{
		ShowFPS:        false,
		GridVisible:    true,
		ShowHints:      true,
		UniformScaling: false,
		ScenePath:      "assets/scene.yaml",
	}
}

// Load reads editor preferences from config/editor.json. If the file is missing or invalid,
// returns Default() and does not create a file.
func Load() (EditorPrefs, error) {
	data, err := os.ReadFile(EditorConfigPath)
	if err != nil {
		return Default(), nil
	}
	var p EditorPrefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes editor preferences to config/editor.json, creating the config directory if needed.
func Save(p EditorPrefs) error {
	dir := filepath.Dir(EditorConfigPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(EditorConfigPath, data, 0644)
}
