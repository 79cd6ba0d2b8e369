package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/deckweaver/deckweaver/internal/config"
	"github.com/deckweaver/deckweaver/internal/deck"
	"github.com/deckweaver/deckweaver/internal/drive"
	"github.com/deckweaver/deckweaver/internal/export"
	"github.com/deckweaver/deckweaver/internal/progress"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [pattern...]",
	Short: "Export decks as self-contained HTML documents",
	Long: `Exports decks to single-file HTML documents with embedded styles and
print-friendly page layout.

With no arguments, every project in the library is exported. Arguments
are glob patterns (** supported) matching deck JSON files on disk:

  deckweaver export
  deckweaver export decks/**/*.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		outDir := exportOut
		if outDir == "" {
			outDir = cfg.ExportDir
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}

		var projects []*deck.Project
		if len(args) == 0 {
			projects, err = libraryProjects(cmd, cfg)
		} else {
			projects, err = globProjects(args)
		}
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			return fmt.Errorf("nothing to export")
		}

		reporter := progress.NewReporter("Exporting decks")
		reporter.Start(len(projects))
		for i, p := range projects {
			name := p.Name
			if name == "" {
				name = "untitled"
			}
			reporter.Update(i+1, name)

			doc, err := export.GenerateDocument(p)
			if err != nil {
				reporter.Finish()
				return fmt.Errorf("exporting %q: %w", name, err)
			}

			target := filepath.Join(outDir, drive.SanitizeName(name)+".html")
			if err := os.WriteFile(target, []byte(doc), 0o644); err != nil {
				reporter.Finish()
				return fmt.Errorf("writing %s: %w", target, err)
			}
		}
		reporter.Finish()

		fmt.Fprintf(os.Stderr, "Exported %d deck(s) to %s\n", len(projects), outDir)
		return nil
	},
}

// libraryProjects loads every saved project from the local library.
func libraryProjects(cmd *cobra.Command, cfg *config.Config) ([]*deck.Project, error) {
	database, lib, err := openLibrary(cfg)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	names, err := lib.List(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("listing library: %w", err)
	}

	projects := make([]*deck.Project, 0, len(names))
	for _, name := range names {
		p, err := lib.Get(cmd.Context(), name)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", name, err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// globProjects reads deck JSON files matching the given patterns.
func globProjects(patterns []string) ([]*deck.Project, error) {
	var projects []*deck.Project
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, path := range matches {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
			var p deck.Project
			if err := json.Unmarshal(data, &p); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
			projects = append(projects, &p)
		}
	}
	return projects, nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output directory (default from config)")
	rootCmd.AddCommand(exportCmd)
}
