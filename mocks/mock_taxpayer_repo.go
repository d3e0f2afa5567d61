package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tdstrack/internal/domain"
)

// MockTaxpayerRepo is a mock implementation of port.TaxpayerRepository.
type MockTaxpayerRepo struct {
	mock.Mock
}

func (m *MockTaxpayerRepo) Upsert(ctx context.Context, taxpayer *domain.Taxpayer) error {
	args := m.Called(ctx, taxpayer)
	return args.Error(0)
}

func (m *MockTaxpayerRepo) GetByGSTIN(ctx context.Context, gstin string) (*domain.Taxpayer, error) {
	args := m.Called(ctx, gstin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Taxpayer), args.Error(1)
}

func (m *MockTaxpayerRepo) ListAll(ctx context.Context) ([]domain.Taxpayer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Taxpayer), args.Error(1)
}

func (m *MockTaxpayerRepo) ListByPAN(ctx context.Context, pan string) ([]domain.Taxpayer, error) {
	args := m.Called(ctx, pan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Taxpayer), args.Error(1)
}
