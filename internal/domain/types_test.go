package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImporterString(t *testing.T) {
	assert.Equal(t, "Matlab", ImporterMatlab.String())
	assert.Equal(t, "Magcad", ImporterMagcad.String())
	assert.Equal(t, "Importer(7)", Importer(7).String())
	assert.Equal(t, []Importer{ImporterMatlab, ImporterMagcad}, Importers())
}

func TestRecordClone(t *testing.T) {
	original := Record{
		Circuit: CircuitConfig{
			Drivers: []Driver{{Name: "Dr1", Value: -4.5}},
		},
		StackPhase: []float64{2},
	}
	original.Circuit.Structure[3] = "Dr1"

	clone := original.Clone()
	assert.Equal(t, original, clone)

	clone.Circuit.Drivers[0].Name = "changed"
	clone.StackPhase[0] = 9
	clone.Circuit.Structure[3] = "1"

	assert.Equal(t, "Dr1", original.Circuit.Drivers[0].Name)
	assert.Equal(t, 2.0, original.StackPhase[0])
	assert.Equal(t, "Dr1", original.Circuit.Structure[3])
}

func TestSections(t *testing.T) {
	sections := Sections()
	assert.Len(t, sections, 6)
	assert.Contains(t, sections, SectionMolecule)
	assert.Contains(t, sections, SectionStackPhase)
}

func TestConfigError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewConfigError(ErrorTypePersistence, "failed to write record", cause).
		With("path", "/tmp/out.yaml")

	assert.Equal(t, "failed to write record: disk full", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Equal(t, "/tmp/out.yaml", err.Context["path"])
	assert.False(t, err.Timestamp.IsZero())

	var target *ConfigError
	wrapped := errors.Join(errors.New("outer"), err)
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, ErrorTypePersistence, target.Type)

	plain := NewConfigError(ErrorTypeUI, "bad key", nil)
	assert.Equal(t, "bad key", plain.Error())
}

func TestErrorTypeString(t *testing.T) {
	tests := []struct {
		errType  ErrorType
		expected string
	}{
		{ErrorTypeValidation, "validation"},
		{ErrorTypeConfiguration, "configuration"},
		{ErrorTypePersistence, "persistence"},
		{ErrorTypeUI, "ui"},
		{ErrorTypeSystem, "system"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errType.String())
		})
	}
}

func TestCircuitConfigUnmarshalJSON(t *testing.T) {
	var c CircuitConfig
	c.Structure[0] = "keep"

	require.NoError(t, json.Unmarshal([]byte(`{"drivers":[]}`), &c))
	assert.Equal(t, "keep", c.Structure[0])

	err := json.Unmarshal([]byte(`{"structure":["a","b"]}`), &c)
	assert.True(t, errors.Is(err, ErrStructureSize))
	assert.Equal(t, "keep", c.Structure[0])

	tokens := make([]string, StructureSize)
	for i := range tokens {
		tokens[i] = "1"
	}
	data, err := json.Marshal(map[string]interface{}{"structure": tokens})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &c))
	assert.Equal(t, "1", c.Structure[0])
	assert.Equal(t, "1", c.Structure[StructureSize-1])
}
