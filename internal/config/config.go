package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DECKWEAVER_*). A missing file is not an
// error; defaults apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// DECKWEAVER_DATA_DIR -> data_dir; a double underscore descends into a
	// section: DECKWEAVER_SYNC__ENABLED -> sync.enabled.
	if err := k.Load(env.Provider("DECKWEAVER_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "DECKWEAVER_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values. Theme names
// are checked against the base theme set by the caller-facing commands, not
// here, so a config written for a newer binary still loads.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.Theme == "" {
		return fmt.Errorf("theme is required")
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.Sync.Enabled && c.Sync.BaseURL == "" {
		return fmt.Errorf("sync.base_url is required when sync is enabled")
	}
	return nil
}
