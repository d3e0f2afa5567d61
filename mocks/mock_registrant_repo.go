package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tdstrack/internal/domain"
)

// MockRegistrantRepo is a mock implementation of port.TdsRegistrantRepository.
type MockRegistrantRepo struct {
	mock.Mock
}

func (m *MockRegistrantRepo) Upsert(ctx context.Context, registrant *domain.TdsRegistrant) error {
	args := m.Called(ctx, registrant)
	return args.Error(0)
}

func (m *MockRegistrantRepo) GetByGSTIN(ctx context.Context, tdsGstin string) (*domain.TdsRegistrant, error) {
	args := m.Called(ctx, tdsGstin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TdsRegistrant), args.Error(1)
}

func (m *MockRegistrantRepo) ListAll(ctx context.Context) ([]domain.TdsRegistrant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TdsRegistrant), args.Error(1)
}

func (m *MockRegistrantRepo) ListByPAN(ctx context.Context, linkedPan string) ([]domain.TdsRegistrant, error) {
	args := m.Called(ctx, linkedPan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TdsRegistrant), args.Error(1)
}
