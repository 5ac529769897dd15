// Package config provides configuration UI components
package config

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/scerpa/scerpa-config/internal/domain"
)

// SettingsModel lets the user browse and edit application settings
type SettingsModel struct {
	manager     *Manager
	state       settingsState
	sections    list.Model
	settings    list.Model
	editor      textinput.Model
	current     Setting
	width       int
	height      int
	styles      settingsStyles
	keyMap      settingsKeyMap
	message     string
	messageType messageType
	changed     map[string]bool
	listener    ConfigChangeListener
}

type settingsState int

const (
	stateSelectingSection settingsState = iota
	stateSelectingSetting
	stateEditingValue
)

type messageType int

const (
	messageTypeNone messageType = iota
	messageTypeSuccess
	messageTypeError
)

type settingsKeyMap struct {
	Enter  key.Binding
	Right  key.Binding
	Left   key.Binding
	Escape key.Binding
	Save   key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

type settingsStyles struct {
	titleStyle    lipgloss.Style
	settingStyle  lipgloss.Style
	valueStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	errorStyle    lipgloss.Style
	successStyle  lipgloss.Style
	helpStyle     lipgloss.Style
	borderStyle   lipgloss.Style
}

// Section groups related settings
type Section struct {
	Name        string
	Description string
	Settings    []Setting
}

// Setting describes a single editable setting
type Setting struct {
	Key         string
	Name        string
	Description string
	Value       interface{}
	Type        string
	Options     []string
}

// FilterValue implements list.Item for Section
func (s Section) FilterValue() string {
	return s.Name
}

// FilterValue implements list.Item for Setting
func (s Setting) FilterValue() string {
	return s.Name
}

// settingDelegate renders a setting with its current value underneath
type settingDelegate struct {
	styles settingsStyles
}

// Height returns the height of a list item
func (d settingDelegate) Height() int {
	return 2
}

// Spacing returns the spacing between list items
func (d settingDelegate) Spacing() int {
	return 1
}

// Update handles updates for the delegate
func (d settingDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders a setting with its current value
func (d settingDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	setting, ok := item.(Setting)
	if !ok {
		return
	}

	nameStyle, valueStyle := d.styles.settingStyle, d.styles.valueStyle
	if index == m.Index() {
		nameStyle, valueStyle = d.styles.selectedStyle, d.styles.selectedStyle
	}

	current := fmt.Sprintf("%v", setting.Value)
	if len(current) > 50 {
		current = current[:47] + "..."
	}

	line := nameStyle.Render("  " + setting.Name)
	if setting.Description != "" {
		line += " - " + nameStyle.Faint(true).Render(setting.Description)
	}
	fmt.Fprint(w, line+"\n"+valueStyle.Render("    Current: "+current))
}

// NewSettingsModel creates a new settings model
func NewSettingsModel(manager *Manager) *SettingsModel {
	keyMap := settingsKeyMap{
		Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit/confirm")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "select")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "back")),
		Escape: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back/cancel")),
		Save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save settings")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset section")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}

	styles := settingsStyles{
		titleStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		settingStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		valueStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		selectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("230")),
		errorStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		successStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		helpStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		borderStyle:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")),
	}

	sections := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	sections.Title = "Settings Sections"
	sections.SetShowStatusBar(false)
	sections.SetFilteringEnabled(false)

	settings := list.New([]list.Item{}, settingDelegate{styles: styles}, 0, 0)
	settings.Title = "Settings"
	settings.SetShowStatusBar(false)
	settings.SetFilteringEnabled(false)

	editor := textinput.New()
	editor.Placeholder = "Enter value..."
	editor.CharLimit = 256

	m := &SettingsModel{
		manager:  manager,
		state:    stateSelectingSection,
		sections: sections,
		settings: settings,
		editor:   editor,
		keyMap:   keyMap,
		styles:   styles,
		changed:  make(map[string]bool),
	}
	m.listener = m.settingChanged
	manager.AddChangeListener(m.listener)
	m.loadSections()
	return m
}

// settingChanged refreshes both lists after the manager applied a change
// and remembers the key until the settings are saved.
func (m *SettingsModel) settingChanged(key string, oldValue, newValue interface{}) {
	if fmt.Sprint(oldValue) == fmt.Sprint(newValue) {
		return
	}
	m.changed[key] = true
	m.loadSections()
	m.reloadSettings()
}

// Changed returns the keys modified since the last save, sorted
func (m *SettingsModel) Changed() []string {
	keys := make([]string, 0, len(m.changed))
	for k := range m.changed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Close stops listening to the manager
func (m *SettingsModel) Close() {
	m.manager.RemoveChangeListener(m.listener)
}

// buildSections describes every editable setting with its current value
func (m *SettingsModel) buildSections() []Section {
	cfg := m.manager.GetConfig()
	return []Section{
		{
			Name:        "Store",
			Description: "Where saved configurations are written",
			Settings: []Setting{
				{Key: "store.path", Name: "Path", Description: "File the editor saves to", Value: cfg.Store.Path, Type: "string"},
				{Key: "store.format", Name: "Format", Description: "yaml or json; empty picks from the extension", Value: cfg.Store.Format, Type: "enum", Options: ValidStoreFormats},
				{Key: "store.overwrite", Name: "Overwrite", Description: "Replace an existing file", Value: cfg.Store.Overwrite, Type: "bool"},
				{Key: "store.backup", Name: "Backup", Description: "Keep a .bak copy of the previous file", Value: cfg.Store.Backup, Type: "bool"},
			},
		},
		{
			Name:        "UI",
			Description: "User interface preferences",
			Settings: []Setting{
				{Key: "ui.theme", Name: "Theme", Description: "Color theme", Value: cfg.UI.Theme, Type: "enum", Options: ValidThemes},
				{Key: "ui.show_help", Name: "Show Help", Description: "Show the key help bar", Value: cfg.UI.ShowHelp, Type: "bool"},
				{Key: "ui.start_tab", Name: "Start Tab", Description: "Tab shown when the editor opens", Value: cfg.UI.StartTab, Type: "enum", Options: ValidStartTabs},
			},
		},
		{
			Name:        "Editor",
			Description: "Form input behaviour",
			Settings: []Setting{
				{Key: "editor.enforce_ranges", Name: "Enforce Ranges", Description: "Reject verbosity outside 0-3", Value: cfg.Editor.EnforceRanges, Type: "bool"},
				{Key: "editor.save_timeout", Name: "Save Timeout", Description: "Give up on a save after this long", Value: cfg.Editor.SaveTimeout.String(), Type: "duration"},
			},
		},
		{
			Name:        "Logging",
			Description: "Logging configuration",
			Settings: []Setting{
				{Key: "logging.level", Name: "Log Level", Description: "Minimum log level", Value: cfg.Logging.Level, Type: "enum", Options: ValidLogLevels},
				{Key: "logging.format", Name: "Log Format", Description: "Log line format", Value: cfg.Logging.Format, Type: "enum", Options: ValidLogFormats},
				{Key: "logging.output", Name: "Log Output", Description: "Log destination", Value: cfg.Logging.Output, Type: "enum", Options: ValidLogOutputs},
				{Key: "logging.file", Name: "Log File", Description: "Used when output is file", Value: cfg.Logging.File, Type: "string"},
			},
		},
	}
}

func (m *SettingsModel) loadSections() {
	built := m.buildSections()
	items := make([]list.Item, len(built))
	for i, s := range built {
		items[i] = s
	}
	m.sections.SetItems(items)
}

// reloadSettings refreshes the settings list of the selected section
func (m *SettingsModel) reloadSettings() {
	selected, ok := m.sections.SelectedItem().(Section)
	if !ok {
		return
	}
	for _, s := range m.buildSections() {
		if s.Name == selected.Name {
			m.loadSettings(s.Settings)
		}
	}
}

func (m *SettingsModel) loadSettings(settings []Setting) {
	items := make([]list.Item, len(settings))
	for i, s := range settings {
		items[i] = s
	}
	m.settings.SetItems(items)
}

// Init implements tea.Model
func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateSelectingSection:
			switch {
			case key.Matches(msg, m.keyMap.Quit):
				m.Close()
				return m, tea.Quit
			case key.Matches(msg, m.keyMap.Enter), key.Matches(msg, m.keyMap.Right):
				if section, ok := m.sections.SelectedItem().(Section); ok {
					m.loadSettings(section.Settings)
					m.state = stateSelectingSetting
				}
				return m, nil
			case key.Matches(msg, m.keyMap.Save):
				m.save()
				return m, nil
			case key.Matches(msg, m.keyMap.Reset):
				if section, ok := m.sections.SelectedItem().(Section); ok {
					if err := m.manager.ResetSection(strings.ToLower(section.Name)); err != nil {
						m.setMessage("Failed to reset section: "+err.Error(), messageTypeError)
					} else {
						m.setMessage("Section reset to defaults", messageTypeSuccess)
					}
				}
				return m, nil
			}
			m.sections, cmd = m.sections.Update(msg)
			return m, cmd

		case stateSelectingSetting:
			switch {
			case key.Matches(msg, m.keyMap.Escape), key.Matches(msg, m.keyMap.Left):
				m.state = stateSelectingSection
				return m, nil
			case key.Matches(msg, m.keyMap.Enter), key.Matches(msg, m.keyMap.Right):
				if setting, ok := m.settings.SelectedItem().(Setting); ok {
					m.startEditing(setting)
				}
				return m, nil
			case key.Matches(msg, m.keyMap.Save):
				m.save()
				return m, nil
			}
			m.settings, cmd = m.settings.Update(msg)
			return m, cmd

		case stateEditingValue:
			switch {
			case key.Matches(msg, m.keyMap.Escape):
				m.cancelEditing()
				return m, nil
			case key.Matches(msg, m.keyMap.Enter):
				m.commitValue()
				return m, nil
			}
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// View implements tea.Model
func (m *SettingsModel) View() string {
	if m.width == 0 {
		return "Loading settings..."
	}

	var content strings.Builder
	title := "SCERPA Configuration Generator Settings"
	if len(m.changed) > 0 {
		title += fmt.Sprintf(" ● %d changed", len(m.changed))
	}
	content.WriteString(m.styles.titleStyle.Render(title) + "\n\n")

	if m.message != "" {
		style := m.styles.successStyle
		if m.messageType == messageTypeError {
			style = m.styles.errorStyle
		}
		content.WriteString(style.Render(m.message) + "\n\n")
	}

	switch m.state {
	case stateSelectingSection:
		content.WriteString(m.styles.borderStyle.Width(m.width - 4).Render(m.sections.View()))
	case stateSelectingSetting:
		content.WriteString(m.styles.helpStyle.Render("← Back to sections") + "\n\n")
		content.WriteString(m.styles.borderStyle.Width(m.width - 4).Render(m.settings.View()))
	case stateEditingValue:
		content.WriteString(m.styles.helpStyle.Render("Editing: "+m.current.Key) + "\n\n")
		if len(m.current.Options) > 0 {
			content.WriteString(m.styles.helpStyle.Render("Options: "+strings.Join(m.current.Options, ", ")) + "\n")
		}
		content.WriteString("New value:\n" + m.editor.View())
	}

	content.WriteString("\n\n" + m.renderHelp())
	return content.String()
}

func (m *SettingsModel) renderHelp() string {
	var help string
	switch m.state {
	case stateSelectingSection:
		help = "Enter/→: Select section • s: Save settings • r: Reset section • q: Quit"
	case stateSelectingSetting:
		help = "Enter/→: Edit setting • ←/Esc: Back • s: Save settings"
	case stateEditingValue:
		help = "Enter: Save • Esc: Cancel"
	}
	return m.styles.helpStyle.Render(help)
}

func (m *SettingsModel) save() {
	if err := m.manager.Save(); err != nil {
		m.setMessage("Failed to save settings: "+err.Error(), messageTypeError)
		return
	}
	m.changed = make(map[string]bool)
	m.setMessage("Settings saved to "+m.manager.GetConfigFile(), messageTypeSuccess)
}

func (m *SettingsModel) startEditing(setting Setting) {
	m.current = setting
	m.editor.SetValue(fmt.Sprintf("%v", setting.Value))
	m.editor.Focus()
	m.state = stateEditingValue
}

func (m *SettingsModel) cancelEditing() {
	m.editor.Blur()
	m.editor.SetValue("")
	m.current = Setting{}
	m.state = stateSelectingSetting
}

func (m *SettingsModel) commitValue() {
	parsed, err := parseSettingValue(m.current, m.editor.Value())
	if err != nil {
		m.setMessage("Invalid value: "+err.Error(), messageTypeError)
		return
	}

	if err := m.manager.Set(m.current.Key, parsed); err != nil {
		m.setMessage("Failed to set value: "+err.Error(), messageTypeError)
		return
	}

	m.setMessage("Value updated successfully", messageTypeSuccess)
	m.cancelEditing()
}

// parseSettingValue converts editor text to the Go type of the setting
func parseSettingValue(setting Setting, value string) (interface{}, error) {
	value = strings.TrimSpace(value)
	switch setting.Type {
	case "bool":
		return strconv.ParseBool(value)
	case "duration":
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, err
		}
		return d.String(), nil
	case "enum":
		for _, option := range setting.Options {
			if strings.EqualFold(option, value) {
				return option, nil
			}
		}
		return nil, fmt.Errorf("%q is not one of %v", value, setting.Options)
	default:
		return value, nil
	}
}

func (m *SettingsModel) setMessage(message string, msgType messageType) {
	m.message = message
	m.messageType = msgType
}

// SetSize implements domain.TUIComponent
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.sections.SetSize(width-6, height-8)
	m.settings.SetSize(width-6, height-8)
}

// SetTheme implements domain.TUIComponent
func (m *SettingsModel) SetTheme(theme domain.Theme) {
	if theme == nil {
		return
	}
	m.styles.titleStyle = m.styles.titleStyle.Foreground(lipgloss.Color(theme.GetColor("primary")))
	m.styles.selectedStyle = m.styles.selectedStyle.Background(lipgloss.Color(theme.GetColor("primary")))
	m.styles.errorStyle = m.styles.errorStyle.Foreground(lipgloss.Color(theme.GetColor("error")))
	m.styles.successStyle = m.styles.successStyle.Foreground(lipgloss.Color(theme.GetColor("success")))
}

// Focus implements domain.TUIComponent
func (m *SettingsModel) Focus() {}

// Blur implements domain.TUIComponent
func (m *SettingsModel) Blur() {
	m.editor.Blur()
}
