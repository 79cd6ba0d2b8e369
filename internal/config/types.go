package config

// Config is the top-level deckweaver configuration, corresponding to
// .deckweaver.yml.
type Config struct {
	DataDir   string       `yaml:"data_dir" koanf:"data_dir"`
	Theme     string       `yaml:"theme" koanf:"theme"`
	Listen    string       `yaml:"listen" koanf:"listen"`
	ExportDir string       `yaml:"export_dir" koanf:"export_dir"`
	Sync      SyncConfig   `yaml:"sync" koanf:"sync"`
	Assist    AssistConfig `yaml:"assist" koanf:"assist"`
}

// SyncConfig holds remote drive sync settings.
type SyncConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}

// AssistConfig holds the AI drafting settings. BaseURL may point at any
// OpenAI-compatible endpoint; empty means api.openai.com.
type AssistConfig struct {
	Model   string `yaml:"model" koanf:"model"`
	BaseURL string `yaml:"base_url" koanf:"base_url"`
}
