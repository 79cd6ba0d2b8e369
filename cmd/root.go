package cmd

import (
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/deckweaver/deckweaver/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "deckweaver",
	Short: "Slide deck editor with themed templates, Drive sync, and HTML export",
	Long: `Deckweaver is a slide deck editor built around typed slide templates
and resolvable color themes. It serves a local editing API with live
updates over websockets, keeps decks in a local library, syncs them
to Google Drive with conflict resolution, drafts decks from an
outline with AI assistance, and exports self-contained HTML documents.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Internal packages log through the stdlib logger; keep that
		// quiet unless -v is set.
		if !verbose {
			log.SetOutput(io.Discard)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.FileName, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
