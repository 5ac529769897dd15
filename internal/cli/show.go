package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/scerpa/scerpa-config/internal/record"
	"github.com/scerpa/scerpa-config/internal/store"
	"github.com/spf13/cobra"
)

func newShowCommand(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the configuration record",
		Long:  `Print the saved configuration record, or the defaults when no file exists.`,
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

			fs, loaded, err := openStore(cmd, cfg, logger)
			if err != nil {
				return err
			}

			r, source := record.New(), "defaults"
			if loaded != nil {
				r, source = *loaded, fs.Path()
			}

			if format == "" {
				format = fs.Format()
			}
			data, err := store.Encode(r, format)
			if err != nil {
				return err
			}

			header := color.New(color.FgCyan, color.Bold)
			if opts.noColor {
				header.DisableColor()
			}
			out := cmd.OutOrStdout()
			if format == store.FormatYAML {
				header.Fprintf(out, "# %s\n", source)
			} else {
				header.Fprintf(cmd.ErrOrStderr(), "// %s\n", source)
			}
			_, err = fmt.Fprint(out, string(data))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format (yaml, json); defaults to the store format")
	return cmd
}
