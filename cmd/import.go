package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckweaver/deckweaver/internal/importer"
)

var (
	importName string
	importJSON bool
)

var importCmd = &cobra.Command{
	Use:   "import <file.md>",
	Short: "Convert a Markdown document into a deck",
	Long: `Parses a Markdown file into slides: the leading H1 becomes the title
slide, H2s become section breaks, lists become bullet slides, fenced
code becomes code slides (mermaid fences become diagrams), and
blockquotes become quote slides.

The deck is saved to the library under the document title, or printed
as JSON with --json.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		p, err := importer.Parse(src)
		if err != nil {
			return err
		}
		if importName != "" {
			p.Name = importName
		}

		if importJSON {
			data, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding deck: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if p.Name == "" {
			return fmt.Errorf("document has no title; pass --name to choose one")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, lib, err := openLibrary(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := lib.Save(cmd.Context(), p); err != nil {
			return fmt.Errorf("saving %q: %w", p.Name, err)
		}

		fmt.Printf("Imported %q (%d slides)\n", p.Name, len(p.Slides))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importName, "name", "n", "", "project name (default: document title)")
	importCmd.Flags().BoolVar(&importJSON, "json", false, "print deck JSON instead of saving")
	rootCmd.AddCommand(importCmd)
}
