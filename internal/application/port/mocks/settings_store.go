// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSettingsStore mocks port.SettingsStore.
type MockSettingsStore struct {
	mock.Mock
}

// NewMockSettingsStore creates a mock that asserts its expectations on cleanup.
func NewMockSettingsStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSettingsStore {
	m := &MockSettingsStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSettingsStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	var data []byte
	if v := args.Get(0); v != nil {
		data = v.([]byte)
	}
	return data, args.Error(1)
}

func (m *MockSettingsStore) Set(ctx context.Context, key string, value any) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}
