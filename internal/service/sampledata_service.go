package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"tdstrack/internal/domain"
	"tdstrack/internal/port"
)

const (
	sampleRegistrantCount = 25
	challanAlphabet       = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// SampleDataResult reports how many demo rows a generation run produced.
type SampleDataResult struct {
	RegistrantsCreated int `json:"registrants_created"`
	PaymentsCreated    int `json:"payments_created"`
}

// SampleDataService seeds demo TDS registrations and payments on top of
// whatever taxpayers and invoice batches are already loaded.
type SampleDataService interface {
	GenerateTdsData(ctx context.Context) (*SampleDataResult, error)
}

type sampleDataService struct {
	taxpayers   port.TaxpayerRepository
	registrants port.TdsRegistrantRepository
	invoices    port.InvoiceBatchRepository
	payments    port.TdsPaymentRepository
	rng         *rand.Rand
	now         func() time.Time
}

// NewSampleDataService creates a new SampleDataService implementation.
func NewSampleDataService(
	taxpayers port.TaxpayerRepository,
	registrants port.TdsRegistrantRepository,
	invoices port.InvoiceBatchRepository,
	payments port.TdsPaymentRepository,
) SampleDataService {
	return &sampleDataService{
		taxpayers:   taxpayers,
		registrants: registrants,
		invoices:    invoices,
		payments:    payments,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
	}
}

// GenerateTdsData picks up to 25 random taxpayers, registers each as a TDS
// deductor under its own GSTIN, and records a current-period payment at
// 80 to 100 percent of the taxpayer's computed liability. Taxpayers with
// zero liability get a registration but no payment.
func (s *sampleDataService) GenerateTdsData(ctx context.Context) (*SampleDataResult, error) {
	taxpayers, err := s.taxpayers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("sampledata.GenerateTdsData: %w", err)
	}

	s.rng.Shuffle(len(taxpayers), func(i, j int) {
		taxpayers[i], taxpayers[j] = taxpayers[j], taxpayers[i]
	})
	if len(taxpayers) > sampleRegistrantCount {
		taxpayers = taxpayers[:sampleRegistrantCount]
	}

	result := &SampleDataResult{}
	now := s.now()
	period := domain.FormatPeriod(now)

	for i := range taxpayers {
		taxpayer := &taxpayers[i]

		registrant := &domain.TdsRegistrant{
			TdsGSTIN:  taxpayer.GSTIN,
			LegalName: taxpayer.LegalName,
			LinkedPan: taxpayer.PANNumber,
		}
		if err := s.registrants.Upsert(ctx, registrant); err != nil {
			return nil, fmt.Errorf("sampledata.GenerateTdsData: %w", err)
		}
		result.RegistrantsCreated++

		batches, err := s.invoices.ListByGSTIN(ctx, taxpayer.GSTIN)
		if err != nil {
			return nil, fmt.Errorf("sampledata.GenerateTdsData: %w", err)
		}
		tdsAmount := 0.0
		for j := range batches {
			_, _, batchTds := domain.TDSLiability(batches[j].PurchaseInvoices)
			tdsAmount += batchTds
		}
		if tdsAmount <= 0 {
			continue
		}

		deducteeAmount := tdsAmount * (0.8 + s.rng.Float64()*0.2)
		igst, cgst, sgst := s.splitGstComponents(deducteeAmount)
		paymentDate := now

		payment := &domain.TdsPayment{
			GSTIN:          taxpayer.GSTIN,
			PaymentPeriod:  period,
			DeducteeAmount: deducteeAmount,
			IgstAmount:     igst,
			CgstAmount:     cgst,
			SgstAmount:     sgst,
			TotalTaxAmount: domain.ComputeTotalTax(igst, cgst, sgst),
			PaymentStatus:  s.randomPaymentStatus(),
			PaymentDate:    &paymentDate,
			ChallanNumber:  s.challanNumber(),
			Remarks:        fmt.Sprintf("Sample payment for %s", period),
		}
		if err := s.payments.Upsert(ctx, payment); err != nil {
			return nil, fmt.Errorf("sampledata.GenerateTdsData: %w", err)
		}
		result.PaymentsCreated++
	}

	return result, nil
}

// splitGstComponents books the amount as IGST or as an even CGST/SGST
// split, chosen at random.
func (s *sampleDataService) splitGstComponents(amount float64) (igst, cgst, sgst float64) {
	if s.rng.Intn(2) == 0 {
		return amount, 0, 0
	}
	return 0, amount / 2, amount / 2
}

func (s *sampleDataService) randomPaymentStatus() domain.PaymentStatus {
	statuses := []domain.PaymentStatus{
		domain.PaymentPending,
		domain.PaymentPaid,
		domain.PaymentPartiallyPaid,
	}
	return statuses[s.rng.Intn(len(statuses))]
}

func (s *sampleDataService) challanNumber() string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = challanAlphabet[s.rng.Intn(len(challanAlphabet))]
	}
	return "CHL" + string(suffix)
}
