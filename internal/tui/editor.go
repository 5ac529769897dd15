// Package tui contains the configuration editor built on Bubble Tea
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/scerpa/scerpa-config/internal/domain"
	"github.com/scerpa/scerpa-config/internal/record"
)

// Notification texts shown after a save attempt
const (
	SaveSuccessMessage = "Configuration saved successfully!"
	SaveFailureMessage = "Failed to save configuration"
)

const (
	defaultSaveTimeout      = 10 * time.Second
	notificationDisplayTime = 4 * time.Second
	labelWidth              = 26
	gridCellWidth           = 7
)

// NotificationKind tells success and failure notifications apart
type NotificationKind int

const (
	NotificationSuccess NotificationKind = iota
	NotificationError
)

// Notification is a message surfaced to the user after an action
type Notification struct {
	Kind NotificationKind
	Text string
}

// saveResultMsg reports the outcome of a save command
type saveResultMsg struct {
	err   error
	saved domain.Record
}

// clearNotificationMsg hides the notification with the given sequence number
type clearNotificationMsg struct {
	seq int
}

// EditorOptions configures a new editor
type EditorOptions struct {
	// Initial is the starting record; defaults are used when nil
	Initial   *domain.Record
	Persister domain.Persister
	Logger    domain.Logger
	Theme     domain.Theme
	Editor    domain.EditorConfig
	UI        domain.UIConfig
	// Target describes where saves go, shown in the header
	Target string
}

// EditorModel is the configuration editor view. It owns the record and
// replaces it with the result of a record update on every input event.
type EditorModel struct {
	record   domain.Record
	baseline domain.Record

	persister     domain.Persister
	logger        domain.Logger
	theme         domain.Theme
	saveTimeout   time.Duration
	enforceRanges bool
	target        string

	tab     Tab
	focus   int
	cell    int
	driver  int
	input   textinput.Model
	errors  map[fieldID]string
	focused bool

	saving        bool
	progress      *AnimatedProgress
	notifications []Notification
	current       *Notification
	noticeSeq     int

	keys     KeyMap
	help     help.Model
	showHelp bool

	width    int
	height   int
	quitting bool
}

// NewEditorModel creates the editor
func NewEditorModel(opts EditorOptions) *EditorModel {
	r := record.New()
	if opts.Initial != nil {
		r = record.Normalize(opts.Initial.Clone())
	}

	theme := opts.Theme
	if theme == nil {
		theme = NewDefaultTheme()
	}

	timeout := opts.Editor.SaveTimeout
	if timeout <= 0 {
		timeout = defaultSaveTimeout
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 256

	m := &EditorModel{
		record:        r,
		baseline:      r.Clone(),
		persister:     opts.Persister,
		logger:        opts.Logger,
		theme:         theme,
		saveTimeout:   timeout,
		enforceRanges: opts.Editor.EnforceRanges,
		target:        opts.Target,
		tab:           TabForSetting(opts.UI.StartTab),
		input:         input,
		errors:        make(map[fieldID]string),
		focused:       true,
		progress:      NewAnimatedProgress(),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		showHelp:      opts.UI.ShowHelp,
	}
	m.progress.SetTheme(theme)
	m.loadInput()
	return m
}

// Init implements tea.Model
func (m *EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Record returns a snapshot of the record being edited
func (m *EditorModel) Record() domain.Record {
	return m.record.Clone()
}

// Dirty reports the field paths changed since the last successful save
func (m *EditorModel) Dirty() []string {
	return record.Diff(m.baseline, m.record)
}

// Notifications returns every notification surfaced so far, oldest first
func (m *EditorModel) Notifications() []Notification {
	return append([]Notification(nil), m.notifications...)
}

// Saving reports whether a save is in flight
func (m *EditorModel) Saving() bool {
	return m.saving
}

// ActiveTab returns the selected tab
func (m *EditorModel) ActiveTab() Tab {
	return m.tab
}

// Update implements tea.Model
func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case saveResultMsg:
		return m, m.handleSaveResult(msg)

	case clearNotificationMsg:
		if msg.seq == m.noticeSeq {
			m.current = nil
		}
		return m, nil

	case ProgressTickMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.focusedField()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Save):
		m.commitInput()
		return m, m.requestSave()

	case key.Matches(msg, m.keys.NextTab):
		m.switchTab(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab(-1)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if f.kind == kindGrid && m.cell >= domain.StructureColumns {
			m.moveCell(-domain.StructureColumns)
			return m, nil
		}
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if f.kind == kindGrid && m.cell < domain.StructureSize-domain.StructureColumns {
			m.moveCell(domain.StructureColumns)
			return m, nil
		}
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.resetSection(f.section)
		return m, nil

	case key.Matches(msg, m.keys.AddDriver) && m.tab == TabCircuit:
		m.addDriver()
		return m, nil

	case key.Matches(msg, m.keys.RemoveDriver) && m.tab == TabCircuit:
		m.removeDriver()
		return m, nil

	case key.Matches(msg, m.keys.Help) && !f.kind.editsText():
		m.help.ShowAll = !m.help.ShowAll
		m.showHelp = true
		return m, nil
	}

	switch f.kind {
	case kindSelect, kindToggle, kindDriverSelect:
		step := 0
		switch {
		case key.Matches(msg, m.keys.Left):
			step = -1
		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Enter), msg.String() == " ":
			step = 1
		}
		if step != 0 {
			m.stepOption(f, step)
		}
		return m, nil

	case kindGrid:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.moveCell(-1)
			return m, nil
		case key.Matches(msg, m.keys.Right):
			m.moveCell(1)
			return m, nil
		}

	case kindAction:
		if key.Matches(msg, m.keys.Enter) {
			return m, m.requestSave()
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Enter) {
		m.commitInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *EditorModel) focusedField() field {
	fields := visibleFields(m.tab)
	if m.focus < 0 || m.focus >= len(fields) {
		return saveField
	}
	return fields[m.focus]
}

// loadInput fills the text input from the record for the focused field
func (m *EditorModel) loadInput() {
	f := m.focusedField()
	if !f.kind.editsText() {
		m.input.Blur()
		m.input.SetValue("")
		return
	}
	m.input.SetValue(fieldText(m.record, f.id, m.driver, m.cell))
	m.input.CursorEnd()
	m.input.Focus()
}

// commitInput applies pending text of the focused field. Input that does
// not parse leaves the record as it was and is reported next to the field.
func (m *EditorModel) commitInput() {
	f := m.focusedField()
	if !f.kind.editsText() {
		return
	}

	value := m.input.Value()
	if value == fieldText(m.record, f.id, m.driver, m.cell) {
		delete(m.errors, f.id)
		return
	}

	next, err := applyText(m.record, f.id, value, m.driver, m.cell, m.enforceRanges)
	if err != nil {
		m.errors[f.id] = err.Error()
		m.logDebug("input rejected", "field", string(f.id), "error", err.Error())
		return
	}

	delete(m.errors, f.id)
	m.record = next
	m.logDebug("field updated", "field", string(f.id), "value", value)
}

func (m *EditorModel) moveFocus(delta int) {
	m.commitInput()
	n := len(visibleFields(m.tab))
	m.focus = (m.focus + delta + n) % n
	m.loadInput()
}

func (m *EditorModel) moveCell(delta int) {
	next := m.cell + delta
	if next < 0 || next >= domain.StructureSize {
		return
	}
	m.commitInput()
	m.cell = next
	m.loadInput()
}

func (m *EditorModel) switchTab(delta int) {
	m.commitInput()
	tabs := Tabs()
	m.tab = tabs[(int(m.tab)+delta+len(tabs))%len(tabs)]
	m.focus = 0
	m.loadInput()
}

func (m *EditorModel) stepOption(f field, step int) {
	var (
		next domain.Record
		err  error
	)

	switch f.id {
	case fieldImporter:
		next, err = record.UpdateField(m.record, domain.SectionSolver, "magcadImporter",
			cycleImporter(m.record.Solver.MagcadImporter, step))
	case fieldPlot1DCharge:
		next, err = record.UpdateField(m.record, domain.SectionPlotting, "plot1DCharge",
			!m.record.Plotting.Plot1DCharge)
	case fieldDriver:
		n := len(m.record.Circuit.Drivers)
		m.driver = (m.driver + step + n) % n
		return
	default:
		return
	}

	if err != nil {
		m.logError("option update failed", "field", string(f.id), "error", err.Error())
		return
	}
	m.record = next
}

func (m *EditorModel) resetSection(section string) {
	if section == "" {
		return
	}
	next, err := record.Reset(m.record, section)
	if err != nil {
		m.logError("reset failed", "section", section, "error", err.Error())
		return
	}
	m.record = next
	if m.driver >= len(m.record.Circuit.Drivers) {
		m.driver = 0
	}
	for _, f := range visibleFields(m.tab) {
		if f.section == section {
			delete(m.errors, f.id)
		}
	}
	m.logInfo("section reset", "section", section)
	m.loadInput()
}

func (m *EditorModel) addDriver() {
	m.commitInput()
	name := record.NextDriverName(m.record)
	m.record = record.AppendDriver(m.record, domain.Driver{Name: name, Value: record.DefaultDriverValue})
	m.driver = len(m.record.Circuit.Drivers) - 1
	m.logDebug("driver added", "name", name)
	m.loadInput()
}

func (m *EditorModel) removeDriver() {
	m.commitInput()
	next, err := record.RemoveDriver(m.record, m.driver)
	if err != nil {
		m.errors[fieldDriver] = err.Error()
		return
	}
	delete(m.errors, fieldDriver)
	m.record = next
	if m.driver >= len(m.record.Circuit.Drivers) {
		m.driver = len(m.record.Circuit.Drivers) - 1
	}
	m.loadInput()
}

// requestSave starts a save unless one is already running. The persister
// receives a snapshot, so edits made while saving do not leak into it.
func (m *EditorModel) requestSave() tea.Cmd {
	if m.saving {
		m.logDebug("save ignored", "reason", domain.ErrSaveInFlight.Error())
		return nil
	}
	if m.persister == nil {
		m.logError("save failed", "error", "no persister configured")
		return m.notify(NotificationError, SaveFailureMessage)
	}

	m.saving = true
	snapshot := m.record.Clone()
	persister := m.persister
	timeout := m.saveTimeout

	save := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return saveResultMsg{err: persister.Save(ctx, snapshot), saved: snapshot}
	}

	return tea.Batch(m.progress.Start("Saving configuration..."), save)
}

func (m *EditorModel) handleSaveResult(msg saveResultMsg) tea.Cmd {
	m.saving = false
	m.progress.Stop()

	if msg.err != nil {
		m.logError("save failed", "error", msg.err.Error(), "target", m.target)
		return m.notify(NotificationError, SaveFailureMessage)
	}

	m.baseline = msg.saved
	m.logInfo("configuration saved", "target", m.target)
	return m.notify(NotificationSuccess, SaveSuccessMessage)
}

func (m *EditorModel) notify(kind NotificationKind, text string) tea.Cmd {
	n := Notification{Kind: kind, Text: text}
	m.notifications = append(m.notifications, n)
	m.current = &n
	m.noticeSeq++

	seq := m.noticeSeq
	return tea.Tick(notificationDisplayTime, func(time.Time) tea.Msg {
		return clearNotificationMsg{seq: seq}
	})
}

// View implements tea.Model
func (m *EditorModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderTabs(),
		m.renderCard(m.tab.String(), tabFields[m.tab]),
		m.renderCard("Plotting Settings", plottingFields),
		m.renderSaveButton(),
	}

	if status := m.renderStatus(); status != "" {
		sections = append(sections, status)
	}
	if m.showHelp {
		sections = append(sections, m.help.View(m.keys))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *EditorModel) renderHeader() string {
	title := "SCERPA Configuration Generator"
	if m.target != "" {
		title += " - " + m.target
	}
	if changed := m.Dirty(); len(changed) > 0 {
		title += fmt.Sprintf(" ● %d unsaved", len(changed))
	}

	style := lipglossStyle(m.theme, "header")
	if m.width > 0 {
		style = style.Width(m.width)
	}
	return style.Render(title)
}

func (m *EditorModel) renderTabs() string {
	var tabs []string
	for _, t := range Tabs() {
		element := "tab"
		if t == m.tab {
			element = "tab_active"
		}
		tabs = append(tabs, lipglossStyle(m.theme, element).Render(t.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *EditorModel) renderCard(title string, fields []field) string {
	focused := m.focusedField()
	lines := []string{lipglossStyle(m.theme, "card_title").Render(title)}

	for _, f := range fields {
		lines = append(lines, m.renderField(f, f.id == focused.id))
		if msg, ok := m.errors[f.id]; ok {
			lines = append(lines, lipglossStyle(m.theme, "error").Render("  "+msg))
		}
	}

	style := lipglossStyle(m.theme, "card")
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *EditorModel) renderField(f field, focused bool) string {
	labelStyle := lipglossStyle(m.theme, "form_label")
	marker := "  "
	if focused {
		labelStyle = lipglossStyle(m.theme, "form_label_focused")
		marker = "▸ "
	}
	label := labelStyle.Width(labelWidth).Render(marker + f.label)

	var value string
	switch f.kind {
	case kindSelect:
		value = m.record.Solver.MagcadImporter.String()
		if focused {
			value = "‹ " + value + " ›"
		}
	case kindToggle:
		value = "[ ] off"
		if m.record.Plotting.Plot1DCharge {
			value = "[x] on"
		}
	case kindDriverSelect:
		d, _ := record.Driver(m.record, m.driver)
		value = fmt.Sprintf("%s (%d/%d)", d.Name, m.driver+1, len(m.record.Circuit.Drivers))
		if focused {
			value = "‹ " + value + " ›"
		}
	case kindGrid:
		return label + "\n" + m.renderGrid(focused)
	default:
		if focused {
			value = m.input.View()
		} else {
			value = fieldText(m.record, f.id, m.driver, m.cell)
		}
		if f.id == fieldVerbosity {
			value += lipglossStyle(m.theme, "muted").Render(
				fmt.Sprintf("  (%d-%d)", record.MinVerbosity, record.MaxVerbosity))
		}
	}

	return label + value
}

func (m *EditorModel) renderGrid(focused bool) string {
	cellStyle := lipglossStyle(m.theme, "grid_cell").Width(gridCellWidth)
	focusStyle := lipglossStyle(m.theme, "grid_cell_focused").Width(gridCellWidth)

	var rows []string
	for row := 0; row < domain.StructureSize/domain.StructureColumns; row++ {
		var cells []string
		for col := 0; col < domain.StructureColumns; col++ {
			i := row*domain.StructureColumns + col
			token := m.record.Circuit.Structure[i]
			if focused && i == m.cell {
				cells = append(cells, focusStyle.Render(m.input.Value()))
				continue
			}
			cells = append(cells, cellStyle.Render(token))
		}
		rows = append(rows, "    "+strings.Join(cells, " "))
	}

	if focused {
		rows = append(rows, lipglossStyle(m.theme, "muted").Render(
			fmt.Sprintf("    cell %d,%d: ", m.cell/domain.StructureColumns+1, m.cell%domain.StructureColumns+1))+m.input.View())
	}
	return strings.Join(rows, "\n")
}

func (m *EditorModel) renderSaveButton() string {
	element := "button"
	if m.focusedField().kind == kindAction {
		element = "button_focused"
	}
	return lipglossStyle(m.theme, element).Render(saveField.label)
}

func (m *EditorModel) renderStatus() string {
	if m.progress.IsActive() {
		return m.progress.View()
	}
	if m.current == nil {
		return ""
	}
	element := "success"
	if m.current.Kind == NotificationError {
		element = "error"
	}
	return lipglossStyle(m.theme, element).Render(m.current.Text)
}

// SetSize implements domain.TUIComponent
func (m *EditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	if width > labelWidth+8 {
		m.input.Width = width - labelWidth - 8
	}
}

// SetTheme implements domain.TUIComponent
func (m *EditorModel) SetTheme(theme domain.Theme) {
	m.theme = theme
	m.progress.SetTheme(theme)
}

// Focus implements domain.TUIComponent
func (m *EditorModel) Focus() {
	m.focused = true
	m.loadInput()
}

// Blur implements domain.TUIComponent
func (m *EditorModel) Blur() {
	m.focused = false
	m.input.Blur()
}

func (m *EditorModel) logDebug(msg string, fields ...interface{}) {
	if m.logger != nil {
		m.logger.Debug(msg, fields...)
	}
}

func (m *EditorModel) logInfo(msg string, fields ...interface{}) {
	if m.logger != nil {
		m.logger.Info(msg, fields...)
	}
}

func (m *EditorModel) logError(msg string, fields ...interface{}) {
	if m.logger != nil {
		m.logger.Error(msg, fields...)
	}
}

var _ domain.TUIComponent = (*EditorModel)(nil)
