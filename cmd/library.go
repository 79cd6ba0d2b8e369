package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:     "library",
	Aliases: []string{"lib"},
	Short:   "Manage decks saved in the local library",
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, lib, err := openLibrary(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		names, err := lib.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing library: %w", err)
		}
		if len(names) == 0 {
			fmt.Println("Library is empty.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSLIDES\tTHEME\tSAVED")
		for _, name := range names {
			p, err := lib.Get(cmd.Context(), name)
			if err != nil {
				return fmt.Errorf("loading %q: %w", name, err)
			}
			saved := "-"
			if !p.SavedAt.IsZero() {
				saved = p.SavedAt.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", name, len(p.Slides), p.Theme.Base, saved)
		}
		return w.Flush()
	},
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, lib, err := openLibrary(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := lib.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("deleting %q: %w", args[0], err)
		}
		fmt.Printf("Deleted %q\n", args[0])
		return nil
	},
}

var libraryRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a saved deck",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, lib, err := openLibrary(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := lib.Rename(cmd.Context(), args[0], args[1]); err != nil {
			return fmt.Errorf("renaming %q: %w", args[0], err)
		}
		fmt.Printf("Renamed %q to %q\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryDeleteCmd)
	libraryCmd.AddCommand(libraryRenameCmd)
}
