package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"porttariff/internal/domain"
	"porttariff/internal/service"
)

// MockCalculatorService is a mock implementation of service.CalculatorService.
type MockCalculatorService struct {
	mock.Mock
}

func (m *MockCalculatorService) Calculate(ctx context.Context, input *service.CalculateInput) (*domain.ResultSet, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResultSet), args.Error(1)
}

func (m *MockCalculatorService) CalculateText(ctx context.Context, vesselInfo string, dueNames []string, debug bool) (string, error) {
	args := m.Called(ctx, vesselInfo, dueNames, debug)
	return args.String(0), args.Error(1)
}

func (m *MockCalculatorService) ResolveRequest(text string) service.Resolution {
	args := m.Called(text)
	return args.Get(0).(service.Resolution)
}
