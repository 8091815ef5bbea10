package cmd

import (
	"encoding/json"
	"fmt"

	"azcli/pkg/runner"

	"github.com/spf13/cobra"
)

var parseJSON bool

// parseCmd shows how a command line is split into arguments.
var parseCmd = &cobra.Command{
	Use:   "parse <line>",
	Short: "Shows the arguments a command line is split into",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens := runner.ParseLine(args[0])
		if tokens == nil {
			tokens = []string{}
		}

		if parseJSON {
			jsonBytes, err := json.Marshal(tokens)
			if err != nil {
				return fmt.Errorf("failed to marshal arguments to JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
			return nil
		}

		for _, token := range tokens {
			fmt.Fprintln(cmd.OutOrStdout(), token)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Output the arguments as a JSON array")
}
