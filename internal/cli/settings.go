package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/scerpa/scerpa-config/internal/config"
	"github.com/scerpa/scerpa-config/internal/tui"
	"github.com/spf13/cobra"
)

func newSettingsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Edit application settings interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := loadSettings(opts)
			if err != nil {
				return err
			}

			themes := tui.NewThemeManager()
			themes.SetTheme(manager.GetUIConfig().Theme)

			model := config.NewSettingsModel(manager)
			defer model.Close()
			model.SetTheme(themes.GetTheme())

			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("error running settings editor: %w", err)
			}
			return nil
		},
	}
}
