package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRulesService is a mock implementation of service.RulesService.
type MockRulesService struct {
	mock.Mock
}

func (m *MockRulesService) Rules(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockRulesService) Extract(ctx context.Context, dues []string) (string, error) {
	args := m.Called(ctx, dues)
	return args.String(0), args.Error(1)
}

func (m *MockRulesService) Loaded() bool {
	args := m.Called()
	return args.Bool(0)
}
