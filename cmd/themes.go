package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deckweaver/deckweaver/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the built-in base themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tLABEL\tBACKGROUND\tPRIMARY")
		for _, name := range theme.Names() {
			base, err := theme.Base(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				base.Name, base.Label, base.Colors["background"], base.Colors["primary"])
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}
