package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"rustai/internal/config"
	"rustai/internal/slogutil"
	"rustai/internal/version"
)

var (
	verbosity   int
	quietFlag   bool
	logFileFlag string
	formatFlag  string
	rootDirFlag string
)

// Per-invocation state set up before every command.
var (
	appConfig   *config.Config
	appLoad     *config.LoadResult
	appLogger   = slogutil.NewDiscardLogger()
	logFactory  *slogutil.LoggerFactory
	projectRoot string
)

var rootCmd = &cobra.Command{
	Use:   "rustai",
	Short: "rustai - Rust construct scanner and doc comment generator",
	Long: `rustai finds the function, struct, trait or impl block around a cursor
position in a Rust source file, resolves the impl block a function belongs to,
and generates /// doc comments for it with an OpenAI-compatible model.

Locations are written file:line[:column], 1-based like compiler messages.`,
	Version:           version.Info(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	flags.BoolVarP(&quietFlag, "quiet", "q", false, "Suppress log output on stderr")
	flags.StringVar(&logFileFlag, "log-file", "", "Also write logs to this file")
	flags.StringVar(&formatFlag, "format", string(FormatHuman), "Output format (human, json, yaml)")
	flags.StringVar(&rootDirFlag, "root", "", "Project directory holding .rustai (default: working directory)")
}

// setup loads configuration and builds the logger for the command being run.
func setup(cmd *cobra.Command, _ []string) error {
	if _, err := parseFormat(formatFlag); err != nil {
		return invalidArgument(err)
	}

	root, err := resolveRoot()
	if err != nil {
		return err
	}
	projectRoot = root

	result, err := config.LoadConfigWithDetails(root)
	if err != nil {
		return err
	}
	appLoad = result
	appConfig = result.Config

	logFactory = slogutil.NewLoggerFactory(root, appConfig.Logging)
	if verbosity > 0 || quietFlag {
		logFactory.SetCLILevel(slogutil.LevelFromVerbosity(verbosity, quietFlag))
	}
	logger, err := logFactory.Logger(cmd.ErrOrStderr(), logFileFlag)
	if err != nil {
		return err
	}
	appLogger = logger.With("run", uuid.NewString(), "cmd", cmd.Name())
	appLogger.Debug("Configuration loaded", "root", root, "config", result.ConfigPath, "defaults", result.UsedDefaults)
	return nil
}

func resolveRoot() (string, error) {
	if rootDirFlag != "" {
		info, err := os.Stat(rootDirFlag)
		if err != nil {
			return "", err
		}
		if !info.IsDir() {
			return "", fmt.Errorf("--root %s is not a directory", rootDirFlag)
		}
		return rootDirFlag, nil
	}
	return os.Getwd()
}

func closeLogging(stderr io.Writer) {
	if logFactory == nil {
		return
	}
	if err := logFactory.Close(); err != nil {
		fmt.Fprintf(stderr, "Error closing log file: %v\n", err)
	}
	logFactory = nil
}
