package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bnema/feedwall/internal/application/port"
	"github.com/bnema/feedwall/internal/domain/entity"
)

// MockSurface mocks port.Surface.
type MockSurface struct {
	mock.Mock
}

// NewMockSurface creates a mock that asserts its expectations on cleanup.
func NewMockSurface(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSurface {
	m := &MockSurface{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSurface) SiteID() entity.SiteID {
	args := m.Called()
	return args.Get(0).(entity.SiteID)
}

func (m *MockSurface) Size() (int, int) {
	args := m.Called()
	return args.Int(0), args.Int(1)
}

func (m *MockSurface) SetUserAgent(ctx context.Context, userAgent string) error {
	return m.Called(ctx, userAgent).Error(0)
}

func (m *MockSurface) SetViewportWidth(ctx context.Context, width int) error {
	return m.Called(ctx, width).Error(0)
}

func (m *MockSurface) SetZoomLevel(ctx context.Context, factor float64) error {
	return m.Called(ctx, factor).Error(0)
}

func (m *MockSurface) SetVolume(ctx context.Context, volume float64) error {
	return m.Called(ctx, volume).Error(0)
}

// MockSurfaceProvider mocks port.SurfaceProvider.
type MockSurfaceProvider struct {
	mock.Mock
}

// NewMockSurfaceProvider creates a mock that asserts its expectations on cleanup.
func NewMockSurfaceProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSurfaceProvider {
	m := &MockSurfaceProvider{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSurfaceProvider) Surface(id entity.SiteID) (port.Surface, bool) {
	args := m.Called(id)
	var s port.Surface
	if v := args.Get(0); v != nil {
		s = v.(port.Surface)
	}
	return s, args.Bool(1)
}
