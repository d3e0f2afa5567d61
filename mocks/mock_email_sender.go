package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tdstrack/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendPendingTdsAlert(ctx context.Context, toEmail string, report *domain.ReconReport) error {
	args := m.Called(ctx, toEmail, report)
	return args.Error(0)
}
