package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"positive", "42", 42, false},
		{"negative", "-1", -1, false},
		{"padded", "  3 ", 3, false},
		{"empty", "", 0, true},
		{"decimal", "2.5", 0, true},
		{"letters", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseInt(tt.input)
			if tt.wantErr {
				assert.False(t, res.OK())
				assert.IsType(t, &ParseError{}, res.Err)
				return
			}
			assert.True(t, res.OK())
			assert.Equal(t, tt.want, res.Value)
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"integer", "10", 10, false},
		{"negative decimal", "-4.5", -4.5, false},
		{"exponent", "1e-3", 0.001, false},
		{"empty", " ", 0, true},
		{"nan", "NaN", 0, true},
		{"inf", "+Inf", 0, true},
		{"garbage", "1.2.3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseFloat(tt.input).Get()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, v, 1e-12)
		})
	}
}

func TestParseIntInRange(t *testing.T) {
	assert.True(t, ParseIntInRange("0", 0, 3).OK())
	assert.True(t, ParseIntInRange("3", 0, 3).OK())

	res := ParseIntInRange("4", 0, 3)
	assert.False(t, res.OK())
	assert.Contains(t, res.Err.Error(), "must be between 0 and 3")

	assert.False(t, ParseIntInRange("x", 0, 3).OK())
}

func TestParseImporter(t *testing.T) {
	assert.Equal(t, ImporterMatlab, ParseImporter("0").Value)
	assert.Equal(t, ImporterMagcad, ParseImporter("1").Value)
	assert.Equal(t, ImporterMagcad, ParseImporter("magcad").Value)
	assert.Equal(t, ImporterMatlab, ParseImporter(" Matlab ").Value)
	assert.False(t, ParseImporter("2").OK())
	assert.False(t, ParseImporter("comsol").OK())
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Input: "x", Reason: "not a number"}
	assert.Equal(t, `invalid input "x": not a number`, err.Error())
}
