package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/scerpa/scerpa-config/internal/record"
	"github.com/scerpa/scerpa-config/internal/store"
	"github.com/spf13/cobra"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration record",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := loadSettings(opts)
			if err != nil {
				return err
			}
			cfg := manager.GetConfig()

			logger, err := newLogger(cfg.Logging)
			if err != nil {
				return err
			}
			defer logger.Close()

			storeCfg := cfg.Store
			storeCfg.Overwrite = force
			fs := store.NewFileStore(storeCfg, logger)

			if err := fs.Save(cmd.Context(), record.New()); err != nil {
				if errors.Is(err, store.ErrFileExists) {
					return fmt.Errorf("%s already exists, use --force to replace it", fs.Path())
				}
				return err
			}

			success := color.New(color.FgGreen)
			if opts.noColor {
				success.DisableColor()
			}
			success.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", fs.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "replace an existing file")
	return cmd
}
