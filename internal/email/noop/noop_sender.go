package noop

import (
	"context"
	"log"

	"tdstrack/internal/domain"
	"tdstrack/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs the alert summary to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendPendingTdsAlert(_ context.Context, toEmail string, report *domain.ReconReport) error {
	log.Printf("[NOOP EMAIL] Pending TDS alert for %s: %.2f pending across %d GSTINs",
		toEmail, report.Summary.TotalTdsPending, report.Summary.TotalGstins)
	return nil
}
