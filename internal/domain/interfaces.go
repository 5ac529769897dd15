// Package domain contains the core business logic interfaces and contracts
package domain

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Persister stores a configuration record somewhere durable.
// The editor only depends on this interface; where and how the record
// ends up is the host's concern.
type Persister interface {
	Save(ctx context.Context, record Record) error
}

// RecordLoader reads a previously persisted record
type RecordLoader interface {
	Load(ctx context.Context) (Record, error)
}

// PersisterFunc adapts a plain function to the Persister interface
type PersisterFunc func(ctx context.Context, record Record) error

// Save calls f(ctx, record)
func (f PersisterFunc) Save(ctx context.Context, record Record) error {
	return f(ctx, record)
}

// TUIComponent defines reusable UI components
type TUIComponent interface {
	tea.Model
	SetSize(width, height int)
	SetTheme(theme Theme)
	Focus()
	Blur()
}

// ConfigurationManager handles application configuration
type ConfigurationManager interface {
	Load() error
	Save() error
	Get(key string) interface{}
	Set(key string, value interface{}) error
	Validate() error
	GetStoreConfig() StoreConfig
	GetUIConfig() UIConfig
}

// Logger defines logging operations
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	Fatal(msg string, fields ...interface{})
}

// Theme defines UI theming interface
type Theme interface {
	GetColor(element string) string
	GetStyle(element string) map[string]interface{}
	SetColor(element, color string)
}
