// Package tui contains theme system for the TUI
package tui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/scerpa/scerpa-config/internal/domain"
)

// DefaultTheme implements the domain.Theme interface
type DefaultTheme struct {
	colors map[string]string
	styles map[string]map[string]interface{}
}

// NewDefaultTheme creates a new default theme
func NewDefaultTheme() *DefaultTheme {
	t := &DefaultTheme{
		colors: map[string]string{
			"primary":    "62",  // Blue
			"secondary":  "205", // Pink
			"success":    "46",  // Green
			"warning":    "226", // Yellow
			"error":      "196", // Red
			"info":       "39",  // Light Blue
			"background": "235", // Dark Gray
			"foreground": "252", // Light Gray
			"muted":      "243", // Medium Gray
			"border":     "240", // Border Gray
			"highlight":  "230", // White
		},
	}
	t.buildStyles()
	return t
}

// buildStyles derives the element styles from the color palette. It runs
// again whenever a color changes so variants stay consistent.
func (t *DefaultTheme) buildStyles() {
	c := t.colors
	t.styles = map[string]map[string]interface{}{
		"header": {
			"background": c["primary"],
			"foreground": c["highlight"],
			"bold":       true,
			"padding":    true,
		},
		"footer": {
			"foreground": c["muted"],
		},
		"tab": {
			"foreground": c["foreground"],
			"padding":    true,
		},
		"tab_active": {
			"background": c["secondary"],
			"foreground": c["highlight"],
			"bold":       true,
			"padding":    true,
		},
		"card": {
			"border":            "rounded",
			"border_foreground": c["border"],
			"padding":           true,
		},
		"card_title": {
			"foreground": c["secondary"],
			"bold":       true,
		},
		"form_label": {
			"foreground": c["foreground"],
		},
		"form_label_focused": {
			"foreground": c["primary"],
			"bold":       true,
		},
		"grid_cell": {
			"foreground": c["foreground"],
		},
		"grid_cell_focused": {
			"background": c["primary"],
			"foreground": c["highlight"],
			"bold":       true,
		},
		"button": {
			"border":            "rounded",
			"border_foreground": c["border"],
			"padding":           true,
		},
		"button_focused": {
			"border":            "rounded",
			"border_foreground": c["primary"],
			"foreground":        c["highlight"],
			"bold":              true,
			"padding":           true,
		},
		"error": {
			"foreground": c["error"],
			"italic":     true,
		},
		"success": {
			"foreground": c["success"],
			"bold":       true,
		},
		"warning": {
			"foreground": c["warning"],
		},
		"info": {
			"foreground": c["info"],
		},
		"muted": {
			"foreground": c["muted"],
			"italic":     true,
		},
	}
}

// GetColor implements domain.Theme
func (t *DefaultTheme) GetColor(element string) string {
	if color, exists := t.colors[element]; exists {
		return color
	}
	return t.colors["foreground"]
}

// GetStyle implements domain.Theme
func (t *DefaultTheme) GetStyle(element string) map[string]interface{} {
	if style, exists := t.styles[element]; exists {
		return style
	}
	return make(map[string]interface{})
}

// SetColor implements domain.Theme
func (t *DefaultTheme) SetColor(element, color string) {
	t.colors[element] = color
	t.buildStyles()
}

// GetLipglossStyle returns a lipgloss.Style for the given element
func (t *DefaultTheme) GetLipglossStyle(element string) lipgloss.Style {
	return lipglossStyle(t, element)
}

// lipglossStyle converts the style map of any domain.Theme into a lipgloss style
func lipglossStyle(theme domain.Theme, element string) lipgloss.Style {
	style := lipgloss.NewStyle()
	if theme == nil {
		return style
	}
	styleMap := theme.GetStyle(element)

	if bg, ok := styleMap["background"].(string); ok {
		style = style.Background(lipgloss.Color(bg))
	}
	if fg, ok := styleMap["foreground"].(string); ok {
		style = style.Foreground(lipgloss.Color(fg))
	}
	if bold, ok := styleMap["bold"].(bool); ok && bold {
		style = style.Bold(true)
	}
	if italic, ok := styleMap["italic"].(bool); ok && italic {
		style = style.Italic(true)
	}
	if padded, ok := styleMap["padding"].(bool); ok && padded {
		style = style.Padding(0, 1)
	}
	if border, ok := styleMap["border"].(string); ok {
		switch border {
		case "rounded":
			style = style.Border(lipgloss.RoundedBorder())
		case "normal":
			style = style.Border(lipgloss.NormalBorder())
		case "thick":
			style = style.Border(lipgloss.ThickBorder())
		}
	}
	if borderFg, ok := styleMap["border_foreground"].(string); ok {
		style = style.BorderForeground(lipgloss.Color(borderFg))
	}

	return style
}

// NewDarkTheme creates a dark theme variant
func NewDarkTheme() *DefaultTheme {
	t := NewDefaultTheme()
	t.colors["background"] = "0"
	t.colors["foreground"] = "15"
	t.colors["muted"] = "8"
	t.colors["border"] = "8"
	t.buildStyles()
	return t
}

// NewLightTheme creates a light theme variant
func NewLightTheme() *DefaultTheme {
	t := NewDefaultTheme()
	t.colors["background"] = "15"
	t.colors["foreground"] = "0"
	t.colors["muted"] = "8"
	t.colors["border"] = "7"
	t.colors["primary"] = "4"
	t.colors["highlight"] = "15"
	t.buildStyles()
	return t
}

// ThemeManager manages theme switching and application
type ThemeManager struct {
	themes      map[string]domain.Theme
	currentName string
	current     domain.Theme
}

// NewThemeManager creates a new theme manager
func NewThemeManager() *ThemeManager {
	themes := map[string]domain.Theme{
		"default": NewDefaultTheme(),
		"dark":    NewDarkTheme(),
		"light":   NewLightTheme(),
	}

	return &ThemeManager{
		themes:      themes,
		currentName: "default",
		current:     themes["default"],
	}
}

// GetTheme returns the current theme
func (tm *ThemeManager) GetTheme() domain.Theme {
	return tm.current
}

// SetTheme sets the current theme by name
func (tm *ThemeManager) SetTheme(name string) bool {
	if theme, exists := tm.themes[name]; exists {
		tm.currentName = name
		tm.current = theme
		return true
	}
	return false
}

// GetCurrentThemeName returns the name of the current theme
func (tm *ThemeManager) GetCurrentThemeName() string {
	return tm.currentName
}

// GetAvailableThemes returns the registered theme names in sorted order
func (tm *ThemeManager) GetAvailableThemes() []string {
	names := make([]string, 0, len(tm.themes))
	for name := range tm.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterTheme registers a new theme
func (tm *ThemeManager) RegisterTheme(name string, theme domain.Theme) {
	tm.themes[name] = theme
}

// ApplyThemeToComponent applies the current theme to a TUI component
func (tm *ThemeManager) ApplyThemeToComponent(component domain.TUIComponent) {
	component.SetTheme(tm.current)
}
