package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kickstart-dev/kickstart/internal/catalog"
)

var modulesJSON bool

func init() {
	modulesCmd.Flags().BoolVar(&modulesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(modulesCmd)
}

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the UI frameworks and modules offered by create",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if modulesJSON {
			data, err := json.MarshalIndent(cat, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling catalog: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "UI FRAMEWORKS (--ui)")
		for _, f := range cat.Frameworks {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", f.ID, f.Package, f.Description)
		}

		order, groups := cat.Categories()
		fmt.Fprintln(w, "\nMODULES (--modules)")
		for _, category := range order {
			fmt.Fprintf(w, "  [%s]\t\t\n", category)
			for _, m := range groups[category] {
				fmt.Fprintf(w, "  %s\t%s\t%s\n", m.ID, m.Package, m.Description)
			}
		}
		return w.Flush()
	},
}
