// Package tui contains animated progress components
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/scerpa/scerpa-config/internal/domain"
)

// AnimatedProgress shows a spinner while a background operation runs
type AnimatedProgress struct {
	theme    domain.Theme
	message  string
	spinner  []string
	frame    int
	isActive bool
}

// ProgressTickMsg is sent to update the progress animation
type ProgressTickMsg struct{}

// NewAnimatedProgress creates a new animated progress indicator
func NewAnimatedProgress() *AnimatedProgress {
	return &AnimatedProgress{
		spinner: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Start starts the progress animation
func (p *AnimatedProgress) Start(message string) tea.Cmd {
	p.message = message
	p.isActive = true
	p.frame = 0
	return p.tick()
}

// Stop stops the progress animation
func (p *AnimatedProgress) Stop() {
	p.isActive = false
}

// Update handles progress animation updates
func (p *AnimatedProgress) Update(msg tea.Msg) (*AnimatedProgress, tea.Cmd) {
	if _, ok := msg.(ProgressTickMsg); ok && p.isActive {
		p.frame = (p.frame + 1) % len(p.spinner)
		return p, p.tick()
	}
	return p, nil
}

// View renders the progress indicator
func (p *AnimatedProgress) View() string {
	if !p.isActive {
		return ""
	}
	return lipglossStyle(p.theme, "warning").Render(fmt.Sprintf("%s %s", p.spinner[p.frame], p.message))
}

// SetTheme sets the progress indicator theme
func (p *AnimatedProgress) SetTheme(theme domain.Theme) {
	p.theme = theme
}

// IsActive returns whether the progress indicator is active
func (p *AnimatedProgress) IsActive() bool {
	return p.isActive
}

func (p *AnimatedProgress) tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return ProgressTickMsg{}
	})
}
