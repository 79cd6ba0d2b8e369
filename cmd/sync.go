package cmd

import (
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/deckweaver/deckweaver/internal/syncer"
)

var syncCmd = &cobra.Command{
	Use:   "sync <project>",
	Short: "Push a library project to Google Drive",
	Long: `Performs a one-shot sync of a library project to Google Drive.

If the remote copy diverged since the last sync, you are prompted to
keep the local version, adopt the remote version, or keep both (the
local version survives as a renamed conflict copy).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.Sync.Enabled {
			return fmt.Errorf("sync is disabled; enable it in %s", cfgFile)
		}

		database, lib, err := openLibrary(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		p, err := lib.Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("loading project %q: %w", args[0], err)
		}

		engine := buildEngine(cfg, lib, nil)
		if engine == nil {
			return fmt.Errorf("no Drive credentials: run `deckweaver auth drive` or set a token")
		}

		var conflict *syncer.Conflict
		var syncErr error
		engine.Events().OnConflict(func(c *syncer.Conflict) { conflict = c })
		engine.Events().OnError(func(err error) { syncErr = err })

		engine.PerformSync(cmd.Context(), p)

		if conflict != nil {
			choice, err := promptResolution(conflict)
			if err != nil {
				return err
			}
			if err := conflict.Resolve(cmd.Context(), choice); err != nil {
				return fmt.Errorf("resolving conflict: %w", err)
			}
		}
		if syncErr != nil {
			return fmt.Errorf("sync failed: %w", syncErr)
		}

		fmt.Fprintf(os.Stderr, "Synced %q (%s)\n", args[0], engine.Status())
		return nil
	},
}

// promptResolution asks which side of a diverged project wins.
func promptResolution(c *syncer.Conflict) (syncer.Choice, error) {
	fmt.Fprintf(os.Stderr, "Project %q changed both locally and on Drive.\n", c.Local.Name)
	fmt.Fprintf(os.Stderr, "  local:  saved %s\n", c.Local.SavedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(os.Stderr, "  remote: modified %s\n", c.Ref.ModifiedTime.Format("2006-01-02 15:04:05"))

	prompt := promptui.Select{
		Label: "Which version do you want to keep?",
		Items: []string{
			"local (overwrite Drive)",
			"remote (overwrite this machine)",
			"both (keep local as a conflict copy)",
		},
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("reading choice: %w", err)
	}
	switch idx {
	case 0:
		return syncer.ChoiceLocal, nil
	case 1:
		return syncer.ChoiceRemote, nil
	default:
		return syncer.ChoiceBoth, nil
	}
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
