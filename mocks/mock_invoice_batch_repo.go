package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tdstrack/internal/domain"
)

// MockInvoiceBatchRepo is a mock implementation of port.InvoiceBatchRepository.
type MockInvoiceBatchRepo struct {
	mock.Mock
}

func (m *MockInvoiceBatchRepo) Upsert(ctx context.Context, batch *domain.InvoiceBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockInvoiceBatchRepo) GetByGSTINAndPeriod(ctx context.Context, gstin, period string) (*domain.InvoiceBatch, error) {
	args := m.Called(ctx, gstin, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceBatch), args.Error(1)
}

func (m *MockInvoiceBatchRepo) ListByGSTIN(ctx context.Context, gstin string) ([]domain.InvoiceBatch, error) {
	args := m.Called(ctx, gstin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceBatch), args.Error(1)
}

func (m *MockInvoiceBatchRepo) ListAll(ctx context.Context) ([]domain.InvoiceBatch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceBatch), args.Error(1)
}

func (m *MockInvoiceBatchRepo) OverallTotals(ctx context.Context) (*domain.Gstr2aTotals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gstr2aTotals), args.Error(1)
}

func (m *MockInvoiceBatchRepo) TotalsByGSTIN(ctx context.Context, gstin string) (*domain.Gstr2aTotals, error) {
	args := m.Called(ctx, gstin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gstr2aTotals), args.Error(1)
}
