// Package config provides configuration management functionality
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/scerpa/scerpa-config/internal/domain"
	"github.com/spf13/viper"
)

// AppName is used for the config file name, directories and env prefix
const AppName = "scerpa-config"

// Manager implements the ConfigurationManager interface
type Manager struct {
	config     *domain.Config
	viper      *viper.Viper
	configFile string
	validator  *Validator
	listeners  []ConfigChangeListener
}

var _ domain.ConfigurationManager = (*Manager)(nil)

// ConfigChangeListener defines a callback for configuration changes
type ConfigChangeListener func(key string, oldValue, newValue interface{})

// NewManager creates a new configuration manager
func NewManager() *Manager {
	v := viper.New()

	v.SetConfigName(AppName)
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/" + AppName)
	v.AddConfigPath("/etc/" + AppName)

	v.SetEnvPrefix("SCERPA_CONFIG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	bindEnvironmentVariables(v)
	setDefaults(v)

	return &Manager{
		config:    &domain.Config{},
		viper:     v,
		validator: NewValidator(),
		listeners: make([]ConfigChangeListener, 0),
	}
}

// bindEnvironmentVariables binds all configuration keys to environment variables
func bindEnvironmentVariables(v *viper.Viper) {
	// Store configuration
	v.BindEnv("store.path", "SCERPA_CONFIG_STORE_PATH")
	v.BindEnv("store.format", "SCERPA_CONFIG_STORE_FORMAT")
	v.BindEnv("store.overwrite", "SCERPA_CONFIG_STORE_OVERWRITE")
	v.BindEnv("store.backup", "SCERPA_CONFIG_STORE_BACKUP")

	// UI configuration
	v.BindEnv("ui.theme", "SCERPA_CONFIG_UI_THEME")
	v.BindEnv("ui.show_help", "SCERPA_CONFIG_UI_SHOW_HELP")
	v.BindEnv("ui.start_tab", "SCERPA_CONFIG_UI_START_TAB")

	// Editor configuration
	v.BindEnv("editor.enforce_ranges", "SCERPA_CONFIG_EDITOR_ENFORCE_RANGES")
	v.BindEnv("editor.save_timeout", "SCERPA_CONFIG_EDITOR_SAVE_TIMEOUT")

	// Logging configuration
	v.BindEnv("logging.level", "SCERPA_CONFIG_LOGGING_LEVEL")
	v.BindEnv("logging.format", "SCERPA_CONFIG_LOGGING_FORMAT")
	v.BindEnv("logging.output", "SCERPA_CONFIG_LOGGING_OUTPUT")
	v.BindEnv("logging.file", "SCERPA_CONFIG_LOGGING_FILE")
}

// defaultValues returns every default keyed by its dotted path
func defaultValues() map[string]interface{} {
	return map[string]interface{}{
		"store.path":      "scerpa_config.yaml",
		"store.format":    "",
		"store.overwrite": true,
		"store.backup":    false,

		"ui.theme":     "default",
		"ui.show_help": true,
		"ui.start_tab": "solver",

		"editor.enforce_ranges": true,
		"editor.save_timeout":   "10s",

		"logging.level":  "info",
		"logging.format": "text",
		"logging.output": "file",
		"logging.file":   AppName + ".log",
	}
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	for key, value := range defaultValues() {
		v.SetDefault(key, value)
	}
}

// Load loads configuration from file and environment variables
func (m *Manager) Load() error {
	if err := m.viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file: defaults and environment only
	} else {
		m.configFile = m.viper.ConfigFileUsed()
	}

	if err := m.viper.Unmarshal(m.config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := m.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	return nil
}

// LoadFromFile loads configuration from a specific file path
func (m *Manager) LoadFromFile(filePath string) error {
	m.viper.SetConfigFile(filePath)

	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	m.configFile = filePath

	if err := m.viper.Unmarshal(m.config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return m.Validate()
}

// GetConfigFile returns the path of the currently loaded config file
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// Save saves the current configuration to file
func (m *Manager) Save() error {
	configFile := m.configFile
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to locate home directory: %w", err)
		}
		configFile = filepath.Join(home, ".config", AppName, AppName+".yaml")
	}

	return m.SaveAs(configFile)
}

// SaveAs saves the current configuration to a specific file path
func (m *Manager) SaveAs(filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := m.viper.WriteConfigAs(filePath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.configFile = filePath
	return nil
}

// Get retrieves a configuration value by key
func (m *Manager) Get(key string) interface{} {
	return m.viper.Get(key)
}

// Set sets a configuration value by key
func (m *Manager) Set(key string, value interface{}) error {
	if err := m.validator.ValidateField(key, value); err != nil {
		return fmt.Errorf("validation failed for key %s: %w", key, err)
	}

	oldValue := m.viper.Get(key)
	m.viper.Set(key, value)

	if err := m.viper.Unmarshal(m.config); err != nil {
		m.viper.Set(key, oldValue)
		m.viper.Unmarshal(m.config)
		return fmt.Errorf("failed to update config: %w", err)
	}

	if err := m.Validate(); err != nil {
		// Rollback on validation failure
		m.viper.Set(key, oldValue)
		m.viper.Unmarshal(m.config)
		return fmt.Errorf("validation failed for key %s: %w", key, err)
	}

	m.notifyListeners(key, oldValue, value)
	return nil
}

// SetMultiple sets multiple configuration values atomically
func (m *Manager) SetMultiple(values map[string]interface{}) error {
	originalValues := make(map[string]interface{})
	for key := range values {
		originalValues[key] = m.viper.Get(key)
	}

	rollback := func() {
		for key, value := range originalValues {
			m.viper.Set(key, value)
		}
		m.viper.Unmarshal(m.config)
	}

	for key, value := range values {
		m.viper.Set(key, value)
	}

	if err := m.viper.Unmarshal(m.config); err != nil {
		rollback()
		return fmt.Errorf("failed to update config: %w", err)
	}

	if err := m.Validate(); err != nil {
		rollback()
		return fmt.Errorf("validation failed: %w", err)
	}

	for key, newValue := range values {
		m.notifyListeners(key, originalValues[key], newValue)
	}

	return nil
}

// AddChangeListener adds a configuration change listener
func (m *Manager) AddChangeListener(listener ConfigChangeListener) {
	m.listeners = append(m.listeners, listener)
}

// RemoveChangeListener removes a configuration change listener
func (m *Manager) RemoveChangeListener(listener ConfigChangeListener) {
	for i, l := range m.listeners {
		if reflect.ValueOf(l).Pointer() == reflect.ValueOf(listener).Pointer() {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			break
		}
	}
}

func (m *Manager) notifyListeners(key string, oldValue, newValue interface{}) {
	for _, listener := range m.listeners {
		listener(key, oldValue, newValue)
	}
}

// Validate validates the current configuration
func (m *Manager) Validate() error {
	return m.validator.Validate(m.config)
}

// GetStoreConfig returns the record store configuration
func (m *Manager) GetStoreConfig() domain.StoreConfig {
	return m.config.Store
}

// GetUIConfig returns the UI configuration
func (m *Manager) GetUIConfig() domain.UIConfig {
	return m.config.UI
}

// GetEditorConfig returns the editor configuration
func (m *Manager) GetEditorConfig() domain.EditorConfig {
	return m.config.Editor
}

// GetLoggingConfig returns the logging configuration
func (m *Manager) GetLoggingConfig() domain.LoggingConfig {
	return m.config.Logging
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// Reset resets configuration to default values
func (m *Manager) Reset() error {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	bindEnvironmentVariables(v)

	m.viper = v

	if err := m.viper.Unmarshal(m.config); err != nil {
		return fmt.Errorf("failed to reset config: %w", err)
	}

	return nil
}

// ResetSection resets a specific configuration section to defaults
func (m *Manager) ResetSection(section string) error {
	prefix := section + "."
	values := make(map[string]interface{})
	for key, value := range defaultValues() {
		if strings.HasPrefix(key, prefix) {
			values[key] = value
		}
	}
	if len(values) == 0 {
		return fmt.Errorf("unknown configuration section: %s", section)
	}

	if err := m.SetMultiple(values); err != nil {
		return fmt.Errorf("failed to reset section %s: %w", section, err)
	}
	return nil
}

// Validator implements configuration validation
type Validator struct {
	rules map[string][]ValidationRule
}

// ValidationRule represents a single validation rule
type ValidationRule struct {
	Name     string
	Validate func(interface{}) error
	Message  string
}

// Allowed values for enum-like settings
var (
	ValidStoreFormats = []string{"", "yaml", "json"}
	ValidThemes       = []string{"default", "dark", "light"}
	ValidStartTabs    = []string{"solver", "molecule", "circuit"}
	ValidLogLevels    = []string{"debug", "info", "warn", "error", "fatal"}
	ValidLogFormats   = []string{"text", "json"}
	ValidLogOutputs   = []string{"stdout", "stderr", "file"}
)

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	v := &Validator{
		rules: make(map[string][]ValidationRule),
	}
	v.setupValidationRules()
	return v
}

func oneOf(name string, valid []string) ValidationRule {
	return ValidationRule{
		Name: "valid_" + name,
		Validate: func(value interface{}) error {
			if s, ok := value.(string); ok && !contains(valid, s) {
				return fmt.Errorf("%s must be one of: %v", name, valid)
			}
			return nil
		},
		Message: fmt.Sprintf("%s must be one of: %s", name, strings.Join(valid, ", ")),
	}
}

// setupValidationRules sets up all validation rules
func (v *Validator) setupValidationRules() {
	v.rules["store.path"] = []ValidationRule{
		{
			Name: "non_empty",
			Validate: func(value interface{}) error {
				if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
					return fmt.Errorf("path cannot be empty")
				}
				return nil
			},
			Message: "Store path cannot be empty",
		},
	}
	v.rules["store.format"] = []ValidationRule{oneOf("format", ValidStoreFormats)}
	v.rules["ui.theme"] = []ValidationRule{oneOf("theme", ValidThemes)}
	v.rules["ui.start_tab"] = []ValidationRule{oneOf("start_tab", ValidStartTabs)}
	v.rules["logging.level"] = []ValidationRule{oneOf("level", ValidLogLevels)}
	v.rules["logging.format"] = []ValidationRule{oneOf("format", ValidLogFormats)}
	v.rules["logging.output"] = []ValidationRule{oneOf("output", ValidLogOutputs)}
	v.rules["editor.save_timeout"] = []ValidationRule{
		{
			Name: "positive_duration",
			Validate: func(value interface{}) error {
				if d, ok := value.(time.Duration); ok && d <= 0 {
					return fmt.Errorf("save_timeout must be positive")
				}
				return nil
			},
			Message: "Save timeout must be a positive duration",
		},
	}
}

// ValidateField validates a specific configuration field
func (v *Validator) ValidateField(key string, value interface{}) error {
	if rules, exists := v.rules[key]; exists {
		for _, rule := range rules {
			if err := rule.Validate(value); err != nil {
				return fmt.Errorf("%s: %s", rule.Message, err.Error())
			}
		}
	}
	return nil
}

// Validate validates the configuration
func (v *Validator) Validate(config *domain.Config) error {
	if err := v.validateStoreConfig(&config.Store); err != nil {
		return fmt.Errorf("store config validation failed: %w", err)
	}

	if err := v.validateUIConfig(&config.UI); err != nil {
		return fmt.Errorf("UI config validation failed: %w", err)
	}

	if err := v.validateEditorConfig(&config.Editor); err != nil {
		return fmt.Errorf("editor config validation failed: %w", err)
	}

	if err := v.validateLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	return nil
}

func (v *Validator) validateStoreConfig(config *domain.StoreConfig) error {
	if strings.TrimSpace(config.Path) == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if !contains(ValidStoreFormats, config.Format) {
		return fmt.Errorf("format must be one of: %v", ValidStoreFormats)
	}
	return nil
}

func (v *Validator) validateUIConfig(config *domain.UIConfig) error {
	if !contains(ValidThemes, config.Theme) {
		return fmt.Errorf("theme must be one of: %v", ValidThemes)
	}
	if !contains(ValidStartTabs, config.StartTab) {
		return fmt.Errorf("start_tab must be one of: %v", ValidStartTabs)
	}
	return nil
}

func (v *Validator) validateEditorConfig(config *domain.EditorConfig) error {
	if config.SaveTimeout <= 0 {
		return fmt.Errorf("save_timeout must be positive")
	}
	return nil
}

func (v *Validator) validateLoggingConfig(config *domain.LoggingConfig) error {
	if !contains(ValidLogLevels, config.Level) {
		return fmt.Errorf("level must be one of: %v", ValidLogLevels)
	}
	if !contains(ValidLogFormats, config.Format) {
		return fmt.Errorf("format must be one of: %v", ValidLogFormats)
	}
	if !contains(ValidLogOutputs, config.Output) {
		return fmt.Errorf("output must be one of: %v", ValidLogOutputs)
	}
	if config.Output == "file" && config.File == "" {
		return fmt.Errorf("file must be set when output is file")
	}
	return nil
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
