// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/mes-comptes/internal/config"
	"fjacquet/mes-comptes/internal/container"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	Backend  string
	DataDir  string
	LogLevel string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppContainer is built before any subcommand runs
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "mes-comptes",
		Short: "A personal finance tracker keeping income and expenses in a single local document.",
		Long: `mes-comptes records income and expense transactions, an initial balance and a
category registry in one document stored next to the executable (or in a
SQLite key-value database). Documents written by earlier versions are
migrated transparently when they are loaded.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to mes-comptes!")
			Log.Info("Use --help to see available commands")
		},
	}

	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Backend, "backend", "b", "", "Storage backend: file, kv or memory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.DataDir, "data-dir", "d", "", "Directory holding the data document (default: next to the executable)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func setup(cmd *cobra.Command, args []string) error {
	config.LoadEnv(Log)

	cfg, err := config.InitializeConfig()
	if err != nil {
		return err
	}
	ApplyFlags(cfg, SharedFlags)
	Log = config.ConfigureLoggingFromConfig(cfg)

	c, err := container.NewContainer(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	AppContainer = c
	return nil
}

// ApplyFlags overrides configuration values with the flags that were set.
func ApplyFlags(cfg *config.Config, flags CommonFlags) {
	if flags.Backend != "" {
		cfg.Storage.Backend = flags.Backend
	}
	if flags.DataDir != "" {
		cfg.Storage.Directory = flags.DataDir
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
}

// Container returns the application container or an error when the root
// command did not run its setup.
func Container() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("container not initialized")
	}
	return AppContainer, nil
}

// Close releases the container built by the last run. It is called after the
// command returns, whether or not it failed.
func Close() {
	if AppContainer == nil {
		return
	}
	if err := AppContainer.Close(); err != nil {
		Log.Warnf("Failed to close storage: %v", err)
	}
	AppContainer = nil
}
