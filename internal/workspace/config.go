package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is looked up in the workspace root.
const ConfigFileName = "quill.toml"

// Config is the workspace manifest. Every field has a usable zero-config
// default; a missing quill.toml is not an error.
type Config struct {
	// SourceRoots are directories scanned for sources, relative to the
	// workspace root. Empty means the root itself.
	SourceRoots []string `toml:"source_roots"`

	// Jobs caps parallel parsing. Zero means GOMAXPROCS.
	Jobs int `toml:"jobs"`

	// MaxDiagnostics bounds each file's diagnostic bag.
	MaxDiagnostics int `toml:"max_diagnostics"`
}

// LoadConfig reads dir/quill.toml, falling back to defaults when the file
// does not exist.
func LoadConfig(dir string) (Config, error) {
	var cfg Config
	path := filepath.Join(dir, ConfigFileName)
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.SourceRoots) == 0 {
		c.SourceRoots = []string{"."}
	}
	if c.MaxDiagnostics <= 0 {
		c.MaxDiagnostics = 100
	}
}
