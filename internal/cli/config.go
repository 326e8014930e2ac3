package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kickstart-dev/kickstart/internal/config"
)

var configJSON bool

func init() {
	configCmd.Flags().BoolVar(&configJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective settings",
	Long: `Show the settings in effect and where each one comes from.

Settings are read from ~/.kickstart/config.yaml and KICKSTART_* environment
variables (KICKSTART_REGISTRY, KICKSTART_PACKAGE_MANAGER,
KICKSTART_INSTALL_COMMAND). Edit the file by hand to change them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Settings(nil)
		out := cmd.OutOrStdout()

		if configJSON {
			type jsonSetting struct {
				Key    string `json:"key"`
				Value  string `json:"value"`
				Source string `json:"source"`
			}
			list := make([]jsonSetting, len(settings))
			for i, s := range settings {
				list[i] = jsonSetting(s)
			}
			data, err := json.MarshalIndent(map[string]any{
				"file":     config.FilePath(),
				"settings": list,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling settings: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "Config file: %s\n\n", config.FilePath())
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tVALUE\tSOURCE")
		for _, s := range settings {
			value := s.Value
			if value == "" {
				value = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.Key, value, s.Source)
		}
		return w.Flush()
	},
}
