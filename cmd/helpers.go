package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/deckweaver/deckweaver/internal/assist"
	"github.com/deckweaver/deckweaver/internal/auth"
	"github.com/deckweaver/deckweaver/internal/config"
	"github.com/deckweaver/deckweaver/internal/db"
	"github.com/deckweaver/deckweaver/internal/drive"
	"github.com/deckweaver/deckweaver/internal/library"
	"github.com/deckweaver/deckweaver/internal/store"
	"github.com/deckweaver/deckweaver/internal/syncer"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `deckweaver init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openLibrary opens the local database and wraps it in a library store.
// The caller owns the returned DB and must close it.
func openLibrary(cfg *config.Config) (*db.DB, *library.Store, error) {
	database, err := db.Open(filepath.Join(cfg.DataDir, "deckweaver.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening library database: %w", err)
	}
	return database, library.NewStore(database), nil
}

// buildEngine wires a sync engine against the configured Drive endpoint.
// Returns nil without error when sync is disabled or no Drive credentials
// are available; callers treat a nil engine as sync-off.
func buildEngine(cfg *config.Config, lib *library.Store, live *store.Store) *syncer.Engine {
	if !cfg.Sync.Enabled {
		return nil
	}
	ts := auth.DriveTokenSource(config.DriveTokenEnvVar)
	if ts == nil {
		return nil
	}
	remote := drive.NewRESTClient(cfg.Sync.BaseURL, ts)
	engine := syncer.New(remote, lib, live, syncer.Options{})
	engine.SetSignedIn(true)
	engine.SetEnabled(true)
	return engine
}

// newDrafter builds the AI drafter, resolving the API key from the
// environment or stored credentials.
func newDrafter(cfg *config.Config) (*assist.Drafter, error) {
	key := auth.OpenAIKey()
	if key == "" {
		return nil, fmt.Errorf("no OpenAI API key: set %s or run `deckweaver auth openai`", config.AssistKeyEnvVar)
	}
	return assist.NewDrafter(key, cfg.Assist.BaseURL, cfg.Assist.Model), nil
}
