package port

import (
	"context"

	"tdstrack/internal/domain"
)

// EmailSender defines the contract for sending compliance alert emails.
type EmailSender interface {
	SendPendingTdsAlert(ctx context.Context, toEmail string, report *domain.ReconReport) error
}
