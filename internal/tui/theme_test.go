// Package tui contains tests for theme system
package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/scerpa/scerpa-config/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewDefaultTheme(t *testing.T) {
	theme := NewDefaultTheme()

	assert.NotNil(t, theme)
	assert.NotEmpty(t, theme.colors)
	assert.NotEmpty(t, theme.styles)

	essentialColors := []string{
		"primary", "secondary", "success", "warning", "error",
		"info", "background", "foreground", "muted", "border", "highlight",
	}
	for _, color := range essentialColors {
		assert.NotEmpty(t, theme.GetColor(color), "Color %s should be defined", color)
	}

	editorElements := []string{
		"header", "tab", "tab_active", "card", "card_title", "form_label",
		"form_label_focused", "grid_cell", "grid_cell_focused", "button",
		"button_focused", "error", "success", "muted",
	}
	for _, element := range editorElements {
		assert.NotEmpty(t, theme.GetStyle(element), "Style %s should be defined", element)
	}
}

func TestDefaultTheme_GetColor(t *testing.T) {
	theme := NewDefaultTheme()

	assert.Equal(t, "62", theme.GetColor("primary"))
	assert.Equal(t, theme.GetColor("foreground"), theme.GetColor("nonexistent"))
}

func TestDefaultTheme_SetColorRebuildsStyles(t *testing.T) {
	theme := NewDefaultTheme()

	theme.SetColor("custom", "123")
	assert.Equal(t, "123", theme.GetColor("custom"))

	theme.SetColor("primary", "99")
	assert.Equal(t, "99", theme.GetColor("primary"))
	assert.Equal(t, "99", theme.GetStyle("header")["background"])
	assert.Equal(t, "99", theme.GetStyle("grid_cell_focused")["background"])
}

func TestDefaultTheme_GetStyle(t *testing.T) {
	theme := NewDefaultTheme()

	headerStyle := theme.GetStyle("header")
	assert.Equal(t, "62", headerStyle["background"])
	assert.Equal(t, "230", headerStyle["foreground"])
	assert.Equal(t, true, headerStyle["bold"])

	assert.Empty(t, theme.GetStyle("nonexistent"))
}

func TestDefaultTheme_GetLipglossStyle(t *testing.T) {
	theme := NewDefaultTheme()

	assert.NotEmpty(t, theme.GetLipglossStyle("card").Render("Test"))
	assert.Equal(t, "Test", theme.GetLipglossStyle("nonexistent").Render("Test"))
	assert.Equal(t, "Test", lipglossStyle(nil, "header").Render("Test"))
}

func TestThemeVariants(t *testing.T) {
	dark := NewDarkTheme()
	assert.Equal(t, "0", dark.GetColor("background"))
	assert.Equal(t, "15", dark.GetColor("foreground"))
	assert.Equal(t, "8", dark.GetStyle("card")["border_foreground"])

	light := NewLightTheme()
	assert.Equal(t, "15", light.GetColor("background"))
	assert.Equal(t, "0", light.GetColor("foreground"))
	assert.Equal(t, "4", light.GetColor("primary"))
	assert.Equal(t, "4", light.GetStyle("header")["background"])
}

func TestThemeManager(t *testing.T) {
	manager := NewThemeManager()

	assert.Equal(t, "default", manager.GetCurrentThemeName())
	assert.Equal(t, []string{"dark", "default", "light"}, manager.GetAvailableThemes())

	assert.True(t, manager.SetTheme("dark"))
	assert.Equal(t, "dark", manager.GetCurrentThemeName())
	assert.Equal(t, manager.current, manager.GetTheme())

	assert.False(t, manager.SetTheme("nonexistent"))
	assert.Equal(t, "dark", manager.GetCurrentThemeName())

	manager.RegisterTheme("custom", NewDefaultTheme())
	assert.Contains(t, manager.GetAvailableThemes(), "custom")
	assert.True(t, manager.SetTheme("custom"))
}

func TestThemeManager_ApplyThemeToComponent(t *testing.T) {
	manager := NewThemeManager()

	component := &MockTUIComponent{}
	component.On("SetTheme", manager.current).Return()

	manager.ApplyThemeToComponent(component)

	component.AssertExpectations(t)
}

// MockTUIComponent for testing
type MockTUIComponent struct {
	mock.Mock
}

func (m *MockTUIComponent) Init() tea.Cmd {
	return nil
}

func (m *MockTUIComponent) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

func (m *MockTUIComponent) View() string {
	return "mock view"
}

func (m *MockTUIComponent) SetSize(width, height int) {
	m.Called(width, height)
}

func (m *MockTUIComponent) SetTheme(theme domain.Theme) {
	m.Called(theme)
}

func (m *MockTUIComponent) Focus() {
	m.Called()
}

func (m *MockTUIComponent) Blur() {
	m.Called()
}
