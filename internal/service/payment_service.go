package service

import (
	"context"
	"fmt"
	"time"

	"tdstrack/internal/domain"
	"tdstrack/internal/port"
	"tdstrack/internal/validator"
)

// PaymentInput is the DTO for recording a TDS payment.
type PaymentInput struct {
	GSTIN          string     `json:"gstin" binding:"required"`
	PaymentPeriod  string     `json:"payment_period" binding:"required"`
	DeducteeAmount float64    `json:"deductee_amount"`
	IgstAmount     float64    `json:"igst_amount"`
	CgstAmount     float64    `json:"cgst_amount"`
	SgstAmount     float64    `json:"sgst_amount"`
	PaymentStatus  string     `json:"payment_status" binding:"required"`
	PaymentDate    *time.Time `json:"payment_date"`
	ChallanNumber  string     `json:"challan_number"`
	Remarks        string     `json:"remarks"`
}

// PaymentService records and serves TDS payments.
type PaymentService interface {
	UpsertPayment(ctx context.Context, input PaymentInput) (*domain.TdsPayment, error)
	GetPayment(ctx context.Context, gstin, period string) (*domain.TdsPayment, error)
	ListByPeriod(ctx context.Context, period string) ([]domain.TdsPayment, error)
	ListPending(ctx context.Context) ([]domain.TdsPayment, error)
	StatusSummary(ctx context.Context, period string) ([]domain.PaymentStatusSummary, error)
}

type paymentService struct {
	payments port.TdsPaymentRepository
}

// NewPaymentService creates a new PaymentService implementation.
func NewPaymentService(payments port.TdsPaymentRepository) PaymentService {
	return &paymentService{payments: payments}
}

// UpsertPayment validates the input and writes the payment keyed on
// (gstin, payment period). The total tax is always recomputed from the
// component amounts; a caller-supplied total is ignored.
func (s *paymentService) UpsertPayment(ctx context.Context, input PaymentInput) (*domain.TdsPayment, error) {
	if res := validator.GSTIN(input.GSTIN); !res.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidGSTIN, res.Reason)
	}
	if res := validator.Period(input.PaymentPeriod); !res.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPeriod, res.Reason)
	}
	status := domain.PaymentStatus(input.PaymentStatus)
	if !domain.ValidPaymentStatuses[status] {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPaymentStatus, input.PaymentStatus)
	}
	if input.DeducteeAmount < 0 || input.IgstAmount < 0 || input.CgstAmount < 0 || input.SgstAmount < 0 {
		return nil, domain.ErrNegativeAmount
	}

	payment := &domain.TdsPayment{
		GSTIN:          input.GSTIN,
		PaymentPeriod:  input.PaymentPeriod,
		DeducteeAmount: input.DeducteeAmount,
		IgstAmount:     input.IgstAmount,
		CgstAmount:     input.CgstAmount,
		SgstAmount:     input.SgstAmount,
		TotalTaxAmount: domain.ComputeTotalTax(input.IgstAmount, input.CgstAmount, input.SgstAmount),
		PaymentStatus:  status,
		PaymentDate:    input.PaymentDate,
		ChallanNumber:  input.ChallanNumber,
		Remarks:        input.Remarks,
	}
	if err := s.payments.Upsert(ctx, payment); err != nil {
		return nil, fmt.Errorf("payment.UpsertPayment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) GetPayment(ctx context.Context, gstin, period string) (*domain.TdsPayment, error) {
	if res := validator.Period(period); !res.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPeriod, res.Reason)
	}
	payment, err := s.payments.GetByGSTINAndPeriod(ctx, gstin, period)
	if err != nil {
		return nil, fmt.Errorf("payment.GetPayment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) ListByPeriod(ctx context.Context, period string) ([]domain.TdsPayment, error) {
	if res := validator.Period(period); !res.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPeriod, res.Reason)
	}
	payments, err := s.payments.ListByPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("payment.ListByPeriod: %w", err)
	}
	return payments, nil
}

func (s *paymentService) ListPending(ctx context.Context) ([]domain.TdsPayment, error) {
	payments, err := s.payments.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("payment.ListPending: %w", err)
	}
	return payments, nil
}

func (s *paymentService) StatusSummary(ctx context.Context, period string) ([]domain.PaymentStatusSummary, error) {
	if res := validator.Period(period); !res.Valid {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPeriod, res.Reason)
	}
	summary, err := s.payments.StatusSummary(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("payment.StatusSummary: %w", err)
	}
	return summary, nil
}
