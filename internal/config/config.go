package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileNames are the config file names looked up, in order.
var FileNames = []string{"assmerge.yml", "assmerge.yaml"}

// ProjectConfig holds project-level merge settings loaded from assmerge.yml.
// Zero values mean "not set"; command-line flags override whatever is set.
type ProjectConfig struct {
	ConflictMarker     string `yaml:"conflictMarker,omitempty"`
	ConflictMarkerSize int    `yaml:"conflictMarkerSize,omitempty"`
	Diff3              bool   `yaml:"diff3,omitempty"`
	ScriptInfo         string `yaml:"scriptInfo,omitempty"`
	Verbose            bool   `yaml:"verbose,omitempty"`
}

// Load attempts to read assmerge.yml or assmerge.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
