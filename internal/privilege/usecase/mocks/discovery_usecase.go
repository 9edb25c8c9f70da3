// Package mocks provides mock implementations of the privilege use cases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/hivelvet/internal/privilege/domain"
)

// MockDiscoveryUseCase is a mock implementation of DiscoveryUseCase.
type MockDiscoveryUseCase struct {
	mock.Mock
}

// Discover mocks the Discover method.
func (m *MockDiscoveryUseCase) Discover(ctx context.Context) (domain.Registry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Registry), args.Error(1)
}

// MockCachedDiscoveryUseCase is a mock implementation of CachedDiscoveryUseCase.
type MockCachedDiscoveryUseCase struct {
	MockDiscoveryUseCase
}

// Invalidate mocks the Invalidate method.
func (m *MockCachedDiscoveryUseCase) Invalidate() {
	m.Called()
}
