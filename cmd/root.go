package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"azcli/pkg/cli"
	"azcli/pkg/config"
	"azcli/pkg/log"
	"azcli/pkg/model"
	"azcli/pkg/system"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "./azcli.yaml"

type contextKey string

const loggerKey contextKey = "logger"

var (
	cfgFile  string
	logLevel string

	// newCLI builds the CLI used by every subcommand. Tests replace it to bind the
	// commands to mock runners.
	newCLI = func(opts model.Options, logger log.Logger) (*cli.CLI, error) {
		return cli.New(opts, system.ShellFactory(system.WithLogger(logger)), logger)
	}

	rootCmd = &cobra.Command{
		Use:   "azcli",
		Short: "azcli runs Azure CLI commands through a swappable runner",
		Long: `A thin wrapper around the az command-line tool. Commands are built as
argument lists and executed once, with global options taken from an options file
and AZCLI_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLogLevel(logLevel)
			if err != nil {
				return err
			}
			logger := log.NewSlogLogger(level, cmd.ErrOrStderr()).With("command", cmd.Name())
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, loggerKey, log.Logger(logger)))
			return nil
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loggerFrom(cmd *cobra.Command) log.Logger {
	if logger, ok := cmd.Context().Value(loggerKey).(log.Logger); ok {
		return logger
	}
	return log.NewNopLogger()
}

// loadCLI loads the options and constructs the CLI. The default options file is
// optional; an explicitly named one must exist.
func loadCLI(cmd *cobra.Command) (*cli.CLI, error) {
	logger := loggerFrom(cmd)

	filename := cfgFile
	if filename == defaultConfigFile {
		exists, err := afero.Exists(system.AppFs, filename)
		if err != nil {
			return nil, err
		}
		if !exists {
			logger.Debug("No options file, using environment and defaults", "path", filename)
			filename = ""
		}
	}

	opts, err := config.LoadOptionsWithEnv(filename, logger)
	if err != nil {
		return nil, fmt.Errorf("error loading options: %w", err)
	}
	return newCLI(*opts, logger)
}

func parseLogLevel(levelStr string) (slog.Level, error) {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", levelStr)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigFile, "options file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}
