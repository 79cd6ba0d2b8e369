package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deckweaver/deckweaver/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file through an interactive wizard",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard()
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s (theme %q, data in %s)\n", config.FileName, cfg.Theme, cfg.DataDir)
		fmt.Println("Run `deckweaver serve` to start editing.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
