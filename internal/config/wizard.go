package config

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"

	"github.com/deckweaver/deckweaver/internal/theme"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .deckweaver.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to deckweaver! Let's set up your workspace.")
	fmt.Println()

	defaults := DefaultConfig()

	// 1. Default theme for new decks.
	themePrompt := promptui.Select{
		Label: "Default theme for new decks",
		Items: theme.Names(),
	}
	_, themeName, err := themePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}

	// 2. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory for the local deck library",
		Default: defaults.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 3. Editor listen address.
	listenPrompt := promptui.Prompt{
		Label:   "Editor listen address",
		Default: defaults.Listen,
	}
	listen, err := listenPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("listen address: %w", err)
	}

	// 4. Drive sync.
	syncPrompt := promptui.Select{
		Label: "Enable remote drive sync",
		Items: []string{"no", "yes"},
	}
	syncIdx, _, err := syncPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("sync selection: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Theme = themeName
	cfg.DataDir = dataDir
	cfg.Listen = listen
	cfg.Sync.Enabled = syncIdx == 1

	if cfg.Sync.Enabled && os.Getenv(DriveTokenEnvVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before syncing.\n", DriveTokenEnvVar)
	}

	if err := cfg.Save(FileName); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", FileName)
	return cfg, nil
}
