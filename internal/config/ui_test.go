package config

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoadedSettingsModel(t *testing.T) *SettingsModel {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	manager := NewManager()
	require.NoError(t, manager.Load())

	model := NewSettingsModel(manager)
	model.SetSize(100, 50)
	return model
}

func TestNewSettingsModel(t *testing.T) {
	model := newLoadedSettingsModel(t)

	assert.Equal(t, stateSelectingSection, model.state)
	assert.Len(t, model.sections.Items(), 4)
	assert.Nil(t, model.Init())
}

func TestSettingsModelWindowResize(t *testing.T) {
	model := newLoadedSettingsModel(t)

	updated, cmd := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Nil(t, cmd)

	settingsModel := updated.(*SettingsModel)
	assert.Equal(t, 120, settingsModel.width)
	assert.Equal(t, 40, settingsModel.height)
}

func TestSettingsModelNavigation(t *testing.T) {
	model := newLoadedSettingsModel(t)

	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateSelectingSetting, model.state)
	assert.Len(t, model.settings.Items(), 4)

	model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateSelectingSection, model.state)
}

func TestSettingsModelEditValue(t *testing.T) {
	model := newLoadedSettingsModel(t)

	// Store section -> Path setting -> editor
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, stateEditingValue, model.state)
	assert.Equal(t, "store.path", model.current.Key)
	assert.Equal(t, "scerpa_config.yaml", model.editor.Value())

	model.editor.SetValue("runs/latest.json")
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, stateSelectingSetting, model.state)
	assert.Equal(t, "runs/latest.json", model.manager.GetStoreConfig().Path)
	assert.Equal(t, messageTypeSuccess, model.messageType)
}

func TestSettingsModelRejectsInvalidValue(t *testing.T) {
	model := newLoadedSettingsModel(t)

	model.startEditing(Setting{Key: "ui.theme", Type: "enum", Options: ValidThemes})
	model.editor.SetValue("neon")
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, stateEditingValue, model.state)
	assert.Equal(t, messageTypeError, model.messageType)
	assert.Equal(t, "default", model.manager.GetUIConfig().Theme)
}

func TestSettingsModelCancelEditing(t *testing.T) {
	model := newLoadedSettingsModel(t)

	model.startEditing(Setting{Key: "logging.file", Type: "string"})
	model.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, stateSelectingSetting, model.state)
	assert.Empty(t, model.current.Key)
	assert.Empty(t, model.editor.Value())
}

func TestSettingsModelResetSection(t *testing.T) {
	model := newLoadedSettingsModel(t)
	require.NoError(t, model.manager.Set("store.backup", true))

	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	assert.Equal(t, messageTypeSuccess, model.messageType)
	assert.False(t, model.manager.GetStoreConfig().Backup)
}

func TestSettingsModelView(t *testing.T) {
	model := newLoadedSettingsModel(t)

	view := model.View()
	assert.Contains(t, view, "Settings")
	assert.Contains(t, view, "Select section")

	model.width = 0
	assert.Equal(t, "Loading settings...", model.View())
}

func TestParseSettingValue(t *testing.T) {
	v, err := parseSettingValue(Setting{Type: "bool"}, "true")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = parseSettingValue(Setting{Type: "duration"}, "1500ms")
	require.NoError(t, err)
	assert.Equal(t, "1.5s", v)

	v, err = parseSettingValue(Setting{Type: "enum", Options: ValidLogLevels}, "DEBUG")
	require.NoError(t, err)
	assert.Equal(t, "debug", v)

	_, err = parseSettingValue(Setting{Type: "enum", Options: ValidLogLevels}, "loud")
	assert.Error(t, err)

	_, err = parseSettingValue(Setting{Type: "bool"}, "maybe")
	assert.Error(t, err)

	v, err = parseSettingValue(Setting{Type: "string"}, "  out.yaml ")
	require.NoError(t, err)
	assert.Equal(t, "out.yaml", v)
}

func TestSettingsModelTracksChanges(t *testing.T) {
	model := newLoadedSettingsModel(t)
	assert.Empty(t, model.Changed())

	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model.editor.SetValue("runs/latest.json")
	model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"store.path"}, model.Changed())
	assert.Contains(t, model.View(), "1 changed")
	setting, ok := model.settings.SelectedItem().(Setting)
	require.True(t, ok)
	assert.Equal(t, "runs/latest.json", setting.Value, "settings list is refreshed")

	require.NoError(t, model.manager.Set("store.path", "runs/latest.json"))
	assert.Len(t, model.Changed(), 1, "unchanged values are not tracked")

	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	require.Equal(t, messageTypeSuccess, model.messageType, model.message)
	assert.Empty(t, model.Changed())
	assert.NotContains(t, model.View(), "changed")
}

func TestSettingsModelResetMarksChanges(t *testing.T) {
	model := newLoadedSettingsModel(t)
	require.NoError(t, model.manager.Set("store.backup", true))
	model.changed = make(map[string]bool)

	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Equal(t, []string{"store.backup"}, model.Changed())
}

func TestSettingsModelQuitStopsListening(t *testing.T) {
	model := newLoadedSettingsModel(t)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.NotNil(t, cmd)

	require.NoError(t, model.manager.Set("ui.theme", "dark"))
	assert.Empty(t, model.Changed())
}
