package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tdstrack/internal/domain"
)

// MockPaymentRepo is a mock implementation of port.TdsPaymentRepository.
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Upsert(ctx context.Context, payment *domain.TdsPayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepo) GetByGSTINAndPeriod(ctx context.Context, gstin, period string) (*domain.TdsPayment, error) {
	args := m.Called(ctx, gstin, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TdsPayment), args.Error(1)
}

func (m *MockPaymentRepo) ListByPeriod(ctx context.Context, period string) ([]domain.TdsPayment, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TdsPayment), args.Error(1)
}

func (m *MockPaymentRepo) ListPending(ctx context.Context) ([]domain.TdsPayment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TdsPayment), args.Error(1)
}

func (m *MockPaymentRepo) StatusSummary(ctx context.Context, period string) ([]domain.PaymentStatusSummary, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentStatusSummary), args.Error(1)
}
