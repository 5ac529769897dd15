// Package domain contains core domain types and value objects
package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StructureSize is the number of cells in the circuit structure grid
const StructureSize = 25

// StructureColumns is the width of the structure grid as shown in the editor
const StructureColumns = 5

// Importer selects which front end builds the solver input
type Importer int

const (
	ImporterMatlab Importer = iota
	ImporterMagcad
)

// String returns the display name of the importer
func (i Importer) String() string {
	switch i {
	case ImporterMatlab:
		return "Matlab"
	case ImporterMagcad:
		return "Magcad"
	default:
		return fmt.Sprintf("Importer(%d)", int(i))
	}
}

// Importers lists the selectable importers in display order
func Importers() []Importer {
	return []Importer{ImporterMatlab, ImporterMagcad}
}

// SolverConfig contains solver selection
type SolverConfig struct {
	MagcadImporter Importer `json:"magcadImporter" yaml:"magcadImporter" mapstructure:"magcadImporter"`
}

// MoleculeConfig describes the molecule used by the simulation
type MoleculeConfig struct {
	Name                   string  `json:"name" yaml:"name" mapstructure:"name"`
	IntermolecularDistance float64 `json:"intermolecularDistance" yaml:"intermolecularDistance" mapstructure:"intermolecularDistance"`
}

// Driver is a named input driver and its applied value
type Driver struct {
	Name  string  `json:"name" yaml:"name" mapstructure:"name"`
	Value float64 `json:"value" yaml:"value" mapstructure:"value"`
}

// CircuitConfig contains the circuit layout and its drivers
type CircuitConfig struct {
	Structure [StructureSize]string `json:"structure" yaml:"structure" mapstructure:"structure"`
	Drivers   []Driver              `json:"drivers" yaml:"drivers" mapstructure:"drivers"`
}

// UnmarshalJSON rejects a structure that does not have exactly
// StructureSize tokens. A missing structure keeps the current one.
func (c *CircuitConfig) UnmarshalJSON(data []byte) error {
	type plain CircuitConfig
	aux := struct {
		*plain
		Structure []string `json:"structure"`
	}{plain: (*plain)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Structure == nil {
		return nil
	}
	if len(aux.Structure) != StructureSize {
		return fmt.Errorf("%w: got %d tokens, want %d", ErrStructureSize, len(aux.Structure), StructureSize)
	}
	copy(c.Structure[:], aux.Structure)
	return nil
}

// RuntimeConfig contains solver runtime options
type RuntimeConfig struct {
	PlotIntermediateSteps int `json:"plotIntermediateSteps" yaml:"plotIntermediateSteps" mapstructure:"plotIntermediateSteps"`
	Verbosity             int `json:"verbosity" yaml:"verbosity" mapstructure:"verbosity"`
}

// PlottingConfig contains output plotting options
type PlottingConfig struct {
	Plot1DCharge bool   `json:"plot1DCharge" yaml:"plot1DCharge" mapstructure:"plot1DCharge"`
	OutputPath   string `json:"outputPath" yaml:"outputPath" mapstructure:"outputPath"`
}

// Record is the complete simulation configuration edited by the form.
// Records are treated as immutable snapshots: updates build a new Record
// and never write through slices shared with an older one.
type Record struct {
	Solver     SolverConfig   `json:"solver" yaml:"solver" mapstructure:"solver"`
	Molecule   MoleculeConfig `json:"molecule" yaml:"molecule" mapstructure:"molecule"`
	Circuit    CircuitConfig  `json:"circuit" yaml:"circuit" mapstructure:"circuit"`
	StackPhase []float64      `json:"stackPhase" yaml:"stackPhase" mapstructure:"stackPhase"`
	Runtime    RuntimeConfig  `json:"runtime" yaml:"runtime" mapstructure:"runtime"`
	Plotting   PlottingConfig `json:"plotting" yaml:"plotting" mapstructure:"plotting"`
}

// Clone returns a deep copy of the record
func (r Record) Clone() Record {
	out := r
	out.Circuit.Drivers = append([]Driver(nil), r.Circuit.Drivers...)
	out.StackPhase = append([]float64(nil), r.StackPhase...)
	return out
}

// Section names used to address record fields
const (
	SectionSolver     = "solver"
	SectionMolecule   = "molecule"
	SectionCircuit    = "circuit"
	SectionStackPhase = "stackPhase"
	SectionRuntime    = "runtime"
	SectionPlotting   = "plotting"
)

// Sections lists the top-level sections of a record
func Sections() []string {
	return []string{
		SectionSolver,
		SectionMolecule,
		SectionCircuit,
		SectionStackPhase,
		SectionRuntime,
		SectionPlotting,
	}
}

// StoreConfig contains settings for the file-backed persister
type StoreConfig struct {
	Path      string `json:"path" mapstructure:"path"`
	Format    string `json:"format" mapstructure:"format"`
	Overwrite bool   `json:"overwrite" mapstructure:"overwrite"`
	Backup    bool   `json:"backup" mapstructure:"backup"`
}

// UIConfig contains UI preferences
type UIConfig struct {
	Theme    string `json:"theme" mapstructure:"theme"`
	ShowHelp bool   `json:"show_help" mapstructure:"show_help"`
	StartTab string `json:"start_tab" mapstructure:"start_tab"`
}

// EditorConfig controls how the form treats user input
type EditorConfig struct {
	EnforceRanges bool          `json:"enforce_ranges" mapstructure:"enforce_ranges"`
	SaveTimeout   time.Duration `json:"save_timeout" mapstructure:"save_timeout"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
	Output string `json:"output" mapstructure:"output"`
	File   string `json:"file" mapstructure:"file"`
}

// Config represents the complete application configuration
type Config struct {
	Store   StoreConfig   `json:"store" mapstructure:"store"`
	UI      UIConfig      `json:"ui" mapstructure:"ui"`
	Editor  EditorConfig  `json:"editor" mapstructure:"editor"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeConfiguration
	ErrorTypePersistence
	ErrorTypeUI
	ErrorTypeSystem
)

// String returns the name of the error type
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeConfiguration:
		return "configuration"
	case ErrorTypePersistence:
		return "persistence"
	case ErrorTypeUI:
		return "ui"
	default:
		return "system"
	}
}

// Sentinel errors returned by record operations
var (
	ErrUnknownField    = errors.New("unknown field")
	ErrFieldType       = errors.New("value has wrong type for field")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrLastDriver      = errors.New("cannot remove the last driver")
	ErrSaveInFlight    = errors.New("save already in progress")
	ErrStructureSize   = errors.New("circuit structure has wrong length")
)

// ConfigError represents application-specific errors
type ConfigError struct {
	Type      ErrorType              `json:"type"`
	Message   string                 `json:"message"`
	Cause     error                  `json:"cause,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewConfigError creates a ConfigError stamped with the current time
func NewConfigError(errType ErrorType, message string, cause error) *ConfigError {
	return &ConfigError{
		Type:      errType,
		Message:   message,
		Cause:     cause,
		Context:   make(map[string]interface{}),
		Timestamp: time.Now(),
	}
}

// With attaches a context value and returns the error for chaining
func (e *ConfigError) With(key string, value interface{}) *ConfigError {
	e.Context[key] = value
	return e
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Cause
}
