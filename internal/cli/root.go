// Package cli wires the command line interface of scerpa-config
package cli

import (
	"github.com/scerpa/scerpa-config/internal/config"
	"github.com/scerpa/scerpa-config/internal/domain"
	"github.com/scerpa/scerpa-config/internal/logging"
	"github.com/scerpa/scerpa-config/internal/store"
	"github.com/scerpa/scerpa-config/internal/version"
	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every command
type rootOptions struct {
	configFile string
	file       string
	logLevel   string
	noColor    bool
}

// NewRootCommand builds the command tree. Running it without a
// subcommand opens the editor.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "SCERPA configuration generator",
		Long: `scerpa-config edits the configuration record consumed by the SCERPA
simulator: solver choice, molecule parameters, circuit structure and
plotting options. The record is saved as YAML or JSON.`,
		SilenceUsage: true,
		Version:      version.Get().Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "settings file (default searches ./scerpa-config.yaml and $HOME/.config/scerpa-config)")
	rootCmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "configuration record file (overrides store.path)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newEditCommand(opts))
	rootCmd.AddCommand(newShowCommand(opts))
	rootCmd.AddCommand(newInitCommand(opts))
	rootCmd.AddCommand(newSettingsCommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

// loadSettings reads the application settings and applies flag overrides
func loadSettings(opts *rootOptions) (*config.Manager, error) {
	manager := config.NewManager()

	var err error
	if opts.configFile != "" {
		err = manager.LoadFromFile(opts.configFile)
	} else {
		err = manager.Load()
	}
	if err != nil {
		return nil, domain.NewConfigError(domain.ErrorTypeConfiguration, "failed to load settings", err).
			With("file", opts.configFile)
	}

	if opts.file != "" {
		if err := manager.Set("store.path", opts.file); err != nil {
			return nil, domain.NewConfigError(domain.ErrorTypeValidation, "invalid --file", err)
		}
	}
	if opts.logLevel != "" {
		if err := manager.Set("logging.level", opts.logLevel); err != nil {
			return nil, domain.NewConfigError(domain.ErrorTypeValidation, "invalid --log-level", err)
		}
	}

	return manager, nil
}

// openStore returns the file store and, when the file exists, the record
// saved in it. A missing file yields the default record.
func openStore(cmd *cobra.Command, cfg *domain.Config, logger domain.Logger) (*store.FileStore, *domain.Record, error) {
	fs := store.NewFileStore(cfg.Store, logger)
	if !fs.Exists() {
		return fs, nil, nil
	}

	r, err := fs.Load(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	return fs, &r, nil
}

// newLogger builds the logger for commands that print to the terminal;
// those never log to stdout so their output stays parseable.
func newLogger(cfg domain.LoggingConfig) (*logging.Logger, error) {
	if cfg.Output == "stdout" {
		cfg.Output = "stderr"
	}
	return logging.New(cfg)
}
