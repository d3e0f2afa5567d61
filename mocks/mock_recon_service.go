package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tdstrack/internal/domain"
)

// MockReconService is a mock implementation of service.ReconService.
type MockReconService struct {
	mock.Mock
}

func (m *MockReconService) Report(ctx context.Context) (*domain.ReconReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconReport), args.Error(1)
}

func (m *MockReconService) EmailReport(ctx context.Context, toEmail string) error {
	args := m.Called(ctx, toEmail)
	return args.Error(0)
}
