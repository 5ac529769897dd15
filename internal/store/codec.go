// Package store persists configuration records as YAML or JSON files
package store

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
	"github.com/scerpa/scerpa-config/internal/domain"
	"github.com/scerpa/scerpa-config/internal/record"
	"gopkg.in/yaml.v3"
)

// Supported file formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// FormatForPath picks a format: the explicit one when given, otherwise
// the one matching the file extension, falling back to YAML.
func FormatForPath(path, explicit string) string {
	if explicit != "" {
		return strings.ToLower(explicit)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Encode renders a record in the given format
func Encode(r domain.Record, format string) ([]byte, error) {
	errb := oops.In("store").With("format", format)

	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return nil, errb.Wrapf(err, "failed to encode record")
		}
		if err := enc.Close(); err != nil {
			return nil, errb.Wrapf(err, "failed to encode record")
		}
		return buf.Bytes(), nil

	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, errb.Wrapf(err, "failed to encode record")
		}
		return append(data, '\n'), nil

	default:
		return nil, errb.Errorf("unsupported format %q", format)
	}
}

// Decode parses a record. Fields missing from data keep their default
// values so the result is always fully populated.
func Decode(data []byte, format string) (domain.Record, error) {
	errb := oops.In("store").With("format", format)
	r := record.New()

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &r); err != nil {
			return domain.Record{}, errb.Wrapf(err, "failed to decode record")
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &r); err != nil {
			return domain.Record{}, errb.Wrapf(err, "failed to decode record")
		}
	default:
		return domain.Record{}, errb.Errorf("unsupported format %q", format)
	}

	return record.Normalize(r), nil
}
