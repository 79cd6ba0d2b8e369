package config

import (
	"os"
	"path/filepath"

	"github.com/deckweaver/deckweaver/internal/deck"
)

// FileName is the config file deckweaver reads from the working directory.
const FileName = ".deckweaver.yml"

// AssistKeyEnvVar holds the API key for the drafting endpoint.
const AssistKeyEnvVar = "OPENAI_API_KEY"

// DriveTokenEnvVar holds the OAuth access token for the remote drive.
const DriveTokenEnvVar = "DECKWEAVER_DRIVE_TOKEN"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:   defaultDataDir(),
		Theme:     deck.DefaultThemeName,
		Listen:    "127.0.0.1:8612",
		ExportDir: "exports",
		Sync: SyncConfig{
			Enabled: false,
			BaseURL: "https://www.googleapis.com/drive/v3",
		},
		Assist: AssistConfig{
			Model: "gpt-4o-mini",
		},
	}
}

// defaultDataDir places the local library under the user config directory,
// falling back to a dot directory in the working directory.
func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "deckweaver")
	}
	return ".deckweaver"
}
