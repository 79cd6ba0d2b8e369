package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	generateName  string
	generateTheme string
)

var generateCmd = &cobra.Command{
	Use:   "generate <outline...>",
	Short: "Draft a deck from an outline with AI assistance",
	Long: `Sends an outline to the configured model and saves the drafted deck
to the library. The outline can be passed as arguments or piped in:

  deckweaver generate "Q3 review: shipping velocity, incident trends, roadmap"
  cat outline.txt | deckweaver generate -`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outline := strings.Join(args, " ")
		if outline == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			outline = string(data)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		drafter, err := newDrafter(cfg)
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stderr, "Drafting deck...")
		p, err := drafter.Draft(cmd.Context(), outline)
		if err != nil {
			return fmt.Errorf("drafting deck: %w", err)
		}
		if generateName != "" {
			p.Name = generateName
		}
		if generateTheme != "" {
			p.Theme.Base = generateTheme
		}
		if p.Name == "" {
			p.Name = "drafted-deck"
		}

		database, lib, err := openLibrary(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := lib.Save(cmd.Context(), p); err != nil {
			return fmt.Errorf("saving %q: %w", p.Name, err)
		}

		fmt.Printf("Drafted %q: %d slides, theme %q\n", p.Name, len(p.Slides), p.Theme.Base)
		fmt.Printf("Open it with `deckweaver serve --project %q`\n", p.Name)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateName, "name", "n", "", "project name (default: model's choice)")
	generateCmd.Flags().StringVarP(&generateTheme, "theme", "t", "", "base theme override")
	rootCmd.AddCommand(generateCmd)
}
