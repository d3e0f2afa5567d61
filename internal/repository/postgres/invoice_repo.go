package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"tdstrack/internal/domain"
	"tdstrack/internal/port"
)

type invoiceBatchRepo struct {
	db *sqlx.DB
}

// NewInvoiceBatchRepo creates a new PostgreSQL-backed InvoiceBatchRepository.
func NewInvoiceBatchRepo(db *sqlx.DB) port.InvoiceBatchRepository {
	return &invoiceBatchRepo{db: db}
}

// invoiceBatchRow is the flat scan target for invoice_batches; the batch
// summary lives in individual columns, the invoice lines in a JSONB column.
type invoiceBatchRow struct {
	ID                uuid.UUID                  `db:"id"`
	GSTIN             string                     `db:"gstin"`
	ReturnPeriod      string                     `db:"return_period"`
	PurchaseInvoices  domain.PurchaseInvoiceList `db:"purchase_invoices"`
	TotalInvoices     int                        `db:"total_invoices"`
	TotalInvoiceValue float64                    `db:"total_invoice_value"`
	TotalTaxableValue float64                    `db:"total_taxable_value"`
	TotalCentralTax   float64                    `db:"total_central_tax"`
	TotalStateUtTax   float64                    `db:"total_state_ut_tax"`
	SourceFileKey     string                     `db:"source_file_key"`
	CreatedAt         time.Time                  `db:"created_at"`
	UpdatedAt         time.Time                  `db:"updated_at"`
}

func (row *invoiceBatchRow) toDomain() domain.InvoiceBatch {
	return domain.InvoiceBatch{
		ID:               row.ID,
		GSTIN:            row.GSTIN,
		ReturnPeriod:     row.ReturnPeriod,
		PurchaseInvoices: row.PurchaseInvoices,
		Summary: domain.BatchSummary{
			TotalInvoices:     row.TotalInvoices,
			TotalInvoiceValue: row.TotalInvoiceValue,
			TotalTaxableValue: row.TotalTaxableValue,
			TotalCentralTax:   row.TotalCentralTax,
			TotalStateUtTax:   row.TotalStateUtTax,
		},
		SourceFileKey: row.SourceFileKey,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func (r *invoiceBatchRepo) Upsert(ctx context.Context, batch *domain.InvoiceBatch) error {
	if batch.ID == uuid.Nil {
		batch.ID = uuid.New()
	}
	now := time.Now().UTC()
	batch.CreatedAt = now
	batch.UpdatedAt = now

	query := `INSERT INTO invoice_batches
			(id, gstin, return_period, purchase_invoices,
			 total_invoices, total_invoice_value, total_taxable_value,
			 total_central_tax, total_state_ut_tax, source_file_key,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (gstin, return_period) DO UPDATE SET
			purchase_invoices = EXCLUDED.purchase_invoices,
			total_invoices = EXCLUDED.total_invoices,
			total_invoice_value = EXCLUDED.total_invoice_value,
			total_taxable_value = EXCLUDED.total_taxable_value,
			total_central_tax = EXCLUDED.total_central_tax,
			total_state_ut_tax = EXCLUDED.total_state_ut_tax,
			source_file_key = EXCLUDED.source_file_key,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		batch.ID, batch.GSTIN, batch.ReturnPeriod, batch.PurchaseInvoices,
		batch.Summary.TotalInvoices, batch.Summary.TotalInvoiceValue,
		batch.Summary.TotalTaxableValue, batch.Summary.TotalCentralTax,
		batch.Summary.TotalStateUtTax, batch.SourceFileKey,
		batch.CreatedAt, batch.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceBatchRepo.Upsert: %w", err)
	}
	return nil
}

func (r *invoiceBatchRepo) GetByGSTINAndPeriod(ctx context.Context, gstin, period string) (*domain.InvoiceBatch, error) {
	var row invoiceBatchRow
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM invoice_batches WHERE gstin = $1 AND return_period = $2", gstin, period)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceBatchRepo.GetByGSTINAndPeriod: %w", err)
	}
	batch := row.toDomain()
	return &batch, nil
}

func (r *invoiceBatchRepo) ListByGSTIN(ctx context.Context, gstin string) ([]domain.InvoiceBatch, error) {
	var rows []invoiceBatchRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM invoice_batches WHERE gstin = $1 ORDER BY return_period", gstin)
	if err != nil {
		return nil, fmt.Errorf("invoiceBatchRepo.ListByGSTIN: %w", err)
	}
	return rowsToDomain(rows), nil
}

func (r *invoiceBatchRepo) ListAll(ctx context.Context) ([]domain.InvoiceBatch, error) {
	var rows []invoiceBatchRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM invoice_batches ORDER BY gstin, return_period")
	if err != nil {
		return nil, fmt.Errorf("invoiceBatchRepo.ListAll: %w", err)
	}
	return rowsToDomain(rows), nil
}

func (r *invoiceBatchRepo) OverallTotals(ctx context.Context) (*domain.Gstr2aTotals, error) {
	var totals domain.Gstr2aTotals
	query := `SELECT
			COUNT(*) AS total_batches,
			COALESCE(SUM(total_invoices), 0) AS total_invoices,
			COALESCE(SUM(total_invoice_value), 0) AS total_invoice_value,
			COALESCE(SUM(total_taxable_value), 0) AS total_taxable_value,
			COALESCE(SUM(total_central_tax), 0) AS total_central_tax,
			COALESCE(SUM(total_state_ut_tax), 0) AS total_state_ut_tax
		FROM invoice_batches`
	if err := r.db.GetContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("invoiceBatchRepo.OverallTotals: %w", err)
	}
	return &totals, nil
}

func (r *invoiceBatchRepo) TotalsByGSTIN(ctx context.Context, gstin string) (*domain.Gstr2aTotals, error) {
	var totals domain.Gstr2aTotals
	query := `SELECT
			COUNT(*) AS total_batches,
			COALESCE(SUM(total_invoices), 0) AS total_invoices,
			COALESCE(SUM(total_invoice_value), 0) AS total_invoice_value,
			COALESCE(SUM(total_taxable_value), 0) AS total_taxable_value,
			COALESCE(SUM(total_central_tax), 0) AS total_central_tax,
			COALESCE(SUM(total_state_ut_tax), 0) AS total_state_ut_tax
		FROM invoice_batches WHERE gstin = $1`
	if err := r.db.GetContext(ctx, &totals, query, gstin); err != nil {
		return nil, fmt.Errorf("invoiceBatchRepo.TotalsByGSTIN: %w", err)
	}
	if totals.TotalBatches == 0 {
		return nil, domain.ErrNotFound
	}
	return &totals, nil
}

func rowsToDomain(rows []invoiceBatchRow) []domain.InvoiceBatch {
	batches := make([]domain.InvoiceBatch, 0, len(rows))
	for i := range rows {
		batches = append(batches, rows[i].toDomain())
	}
	return batches
}
