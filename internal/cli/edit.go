package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/scerpa/scerpa-config/internal/logging"
	"github.com/scerpa/scerpa-config/internal/tui"
	"github.com/scerpa/scerpa-config/internal/version"
	"github.com/spf13/cobra"
)

func newEditCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the configuration record in the terminal",
		Long: `Open the configuration editor. When the record file exists it is
loaded as the starting point, otherwise the editor starts from defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, opts)
		},
	}
}

func runEdit(cmd *cobra.Command, opts *rootOptions) error {
	manager, err := loadSettings(opts)
	if err != nil {
		return err
	}
	cfg := manager.GetConfig()

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Close()

	fs, initial, err := openStore(cmd, cfg, logger)
	if err != nil {
		logger.Error("failed to load configuration record", "path", cfg.Store.Path, "error", err.Error())
		return err
	}

	themes := tui.NewThemeManager()
	if !themes.SetTheme(cfg.UI.Theme) {
		logger.Warn("unknown theme, using default", "theme", cfg.UI.Theme)
	}

	editor := tui.NewEditorModel(tui.EditorOptions{
		Initial:   initial,
		Persister: fs,
		Logger:    logger,
		Theme:     themes.GetTheme(),
		Editor:    cfg.Editor,
		UI:        cfg.UI,
		Target:    fs.Path(),
	})

	logger.Info("editor started", "path", fs.Path(), "loaded", initial != nil, "version", version.Get().Version)

	program := tea.NewProgram(editor, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running editor: %w", err)
	}
	return nil
}
