package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPersister is a mock implementation of Persister
type MockPersister struct {
	mock.Mock
}

func (m *MockPersister) Save(ctx context.Context, record Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func TestPersisterInterface(t *testing.T) {
	var p Persister = &MockPersister{}
	mp := p.(*MockPersister)

	record := Record{Molecule: MoleculeConfig{Name: "bisfe_4"}}
	mp.On("Save", mock.Anything, record).Return(nil)

	assert.NoError(t, p.Save(context.Background(), record))
	mp.AssertExpectations(t)
}

func TestPersisterFunc(t *testing.T) {
	var got Record
	p := PersisterFunc(func(ctx context.Context, record Record) error {
		got = record
		return errors.New("read-only")
	})

	err := p.Save(context.Background(), Record{Molecule: MoleculeConfig{Name: "water"}})
	assert.EqualError(t, err, "read-only")
	assert.Equal(t, "water", got.Molecule.Name)
}
