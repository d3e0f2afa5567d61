package port

import (
	"context"

	"tdstrack/internal/domain"
)

// TaxpayerRepository defines the contract for GSTIN master persistence.
// Writes are upserts keyed on the GSTIN; records are never hard-deleted.
type TaxpayerRepository interface {
	Upsert(ctx context.Context, taxpayer *domain.Taxpayer) error
	GetByGSTIN(ctx context.Context, gstin string) (*domain.Taxpayer, error)
	ListAll(ctx context.Context) ([]domain.Taxpayer, error)
	ListByPAN(ctx context.Context, pan string) ([]domain.Taxpayer, error)
}

// TdsRegistrantRepository defines the contract for TDS registration
// persistence, keyed on the TDS GSTIN.
type TdsRegistrantRepository interface {
	Upsert(ctx context.Context, registrant *domain.TdsRegistrant) error
	GetByGSTIN(ctx context.Context, tdsGstin string) (*domain.TdsRegistrant, error)
	ListAll(ctx context.Context) ([]domain.TdsRegistrant, error)
	ListByPAN(ctx context.Context, linkedPan string) ([]domain.TdsRegistrant, error)
}

// InvoiceBatchRepository defines the contract for GSTR2A batch
// persistence. Upsert replaces a batch wholesale per (gstin, period).
type InvoiceBatchRepository interface {
	Upsert(ctx context.Context, batch *domain.InvoiceBatch) error
	GetByGSTINAndPeriod(ctx context.Context, gstin, period string) (*domain.InvoiceBatch, error)
	ListByGSTIN(ctx context.Context, gstin string) ([]domain.InvoiceBatch, error)
	ListAll(ctx context.Context) ([]domain.InvoiceBatch, error)
	OverallTotals(ctx context.Context) (*domain.Gstr2aTotals, error)
	TotalsByGSTIN(ctx context.Context, gstin string) (*domain.Gstr2aTotals, error)
}

// TdsPaymentRepository defines the contract for TDS payment persistence,
// keyed on (gstin, payment period).
type TdsPaymentRepository interface {
	Upsert(ctx context.Context, payment *domain.TdsPayment) error
	GetByGSTINAndPeriod(ctx context.Context, gstin, period string) (*domain.TdsPayment, error)
	ListByPeriod(ctx context.Context, period string) ([]domain.TdsPayment, error)
	ListPending(ctx context.Context) ([]domain.TdsPayment, error)
	StatusSummary(ctx context.Context, period string) ([]domain.PaymentStatusSummary, error)
}
