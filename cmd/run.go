package cmd

import (
	"encoding/json"
	"fmt"

	"azcli/pkg/runner"

	"github.com/spf13/cobra"
)

var (
	runJSON         bool
	runLine         string
	runSubscription string
	runOutput       string
	runQuery        string
)

// runCmd executes one az command
var runCmd = &cobra.Command{
	Use:   "run [flags] [-- args...]",
	Short: "Runs an az command",
	Long: `The run command executes a single az command and prints its standard output.
Arguments after -- are passed to az unchanged; --line takes the whole command as a
single quote-aware string instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runLine == "" && len(args) == 0 {
			return fmt.Errorf("nothing to run: pass arguments or --line")
		}
		if runLine != "" && len(args) > 0 {
			return fmt.Errorf("--line cannot be combined with arguments")
		}

		c, err := loadCLI(cmd)
		if err != nil {
			return err
		}
		if runSubscription != "" {
			c.Subscription(runSubscription)
		}
		if runOutput != "" {
			c.Output(runOutput)
		}
		if runQuery != "" {
			c.Query(runQuery)
		}

		var (
			res    runner.ExecResult
			runErr error
		)
		if runLine != "" {
			res, runErr = c.ExecAsync(cmd.Context(), runLine)
		} else {
			res, runErr = c.ExecArgs(args...)
		}

		if runJSON {
			jsonBytes, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal result to JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		} else {
			fmt.Fprint(cmd.OutOrStdout(), res.Stdout)
			fmt.Fprint(cmd.ErrOrStderr(), res.Stderr)
		}

		return runErr
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Output the execution result in JSON format")
	runCmd.Flags().StringVar(&runLine, "line", "", "Command line to run, split on unquoted whitespace")
	runCmd.Flags().StringVar(&runSubscription, "subscription", "", "Subscription passed to az")
	runCmd.Flags().StringVar(&runOutput, "output", "", "Output format passed to az")
	runCmd.Flags().StringVar(&runQuery, "query", "", "JMESPath query passed to az")
}
