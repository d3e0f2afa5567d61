package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"tdstrack/internal/domain"
	"tdstrack/internal/port"
)

type paymentRepo struct {
	db *sqlx.DB
}

// NewTdsPaymentRepo creates a new PostgreSQL-backed TdsPaymentRepository.
func NewTdsPaymentRepo(db *sqlx.DB) port.TdsPaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Upsert(ctx context.Context, payment *domain.TdsPayment) error {
	now := time.Now().UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	query := `INSERT INTO tds_payments
			(gstin, payment_period, deductee_amount, igst_amount, cgst_amount,
			 sgst_amount, total_tax_amount, payment_status, payment_date,
			 challan_number, remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (gstin, payment_period) DO UPDATE SET
			deductee_amount = EXCLUDED.deductee_amount,
			igst_amount = EXCLUDED.igst_amount,
			cgst_amount = EXCLUDED.cgst_amount,
			sgst_amount = EXCLUDED.sgst_amount,
			total_tax_amount = EXCLUDED.total_tax_amount,
			payment_status = EXCLUDED.payment_status,
			payment_date = EXCLUDED.payment_date,
			challan_number = EXCLUDED.challan_number,
			remarks = EXCLUDED.remarks,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		payment.GSTIN, payment.PaymentPeriod, payment.DeducteeAmount,
		payment.IgstAmount, payment.CgstAmount, payment.SgstAmount,
		payment.TotalTaxAmount, payment.PaymentStatus, payment.PaymentDate,
		payment.ChallanNumber, payment.Remarks, payment.CreatedAt, payment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("paymentRepo.Upsert: %w", err)
	}
	return nil
}

func (r *paymentRepo) GetByGSTINAndPeriod(ctx context.Context, gstin, period string) (*domain.TdsPayment, error) {
	var payment domain.TdsPayment
	err := r.db.GetContext(ctx, &payment,
		"SELECT * FROM tds_payments WHERE gstin = $1 AND payment_period = $2", gstin, period)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("paymentRepo.GetByGSTINAndPeriod: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepo) ListByPeriod(ctx context.Context, period string) ([]domain.TdsPayment, error) {
	var payments []domain.TdsPayment
	err := r.db.SelectContext(ctx, &payments,
		"SELECT * FROM tds_payments WHERE payment_period = $1 ORDER BY gstin", period)
	if err != nil {
		return nil, fmt.Errorf("paymentRepo.ListByPeriod: %w", err)
	}
	return payments, nil
}

func (r *paymentRepo) ListPending(ctx context.Context) ([]domain.TdsPayment, error) {
	var payments []domain.TdsPayment
	err := r.db.SelectContext(ctx, &payments,
		"SELECT * FROM tds_payments WHERE payment_status = $1 ORDER BY payment_period",
		domain.PaymentPending)
	if err != nil {
		return nil, fmt.Errorf("paymentRepo.ListPending: %w", err)
	}
	return payments, nil
}

func (r *paymentRepo) StatusSummary(ctx context.Context, period string) ([]domain.PaymentStatusSummary, error) {
	var rows []domain.PaymentStatusSummary
	query := `SELECT payment_status,
			COALESCE(SUM(total_tax_amount), 0) AS total_tax_amount,
			COUNT(*) AS count
		FROM tds_payments
		WHERE payment_period = $1
		GROUP BY payment_status
		ORDER BY payment_status`
	if err := r.db.SelectContext(ctx, &rows, query, period); err != nil {
		return nil, fmt.Errorf("paymentRepo.StatusSummary: %w", err)
	}
	return rows, nil
}
