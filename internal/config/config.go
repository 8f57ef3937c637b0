// Package config loads optional .dview.yml display defaults. Flags always
// win over config values; inspection semantics are never configurable.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the .dview.yml configuration file.
type Config struct {
	Format  string `yaml:"format,omitempty"`
	NoColor bool   `yaml:"no_color,omitempty"`
	Output  string `yaml:"output,omitempty"`
}

// Load reads .dview.yml or .dview.yaml from dir. If neither exists it
// returns a zero Config (not an error).
func Load(dir string) (Config, error) {
	for _, name := range []string{".dview.yml", ".dview.yaml"} {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		if info.Size() > 1<<20 {
			return Config{}, fmt.Errorf("config file too large: %s (%d bytes, max 1 MB)", path, info.Size())
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
		return cfg, nil
	}
	return Config{}, nil
}
