package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tdstrack/internal/domain"
	"tdstrack/internal/port"
)

// NoTdsGstinMarker is emitted for taxpayers without a TDS registration.
const NoTdsGstinMarker = "-"

// ReconService computes the per-taxpayer TDS reconciliation report.
type ReconService interface {
	Report(ctx context.Context) (*domain.ReconReport, error)
	EmailReport(ctx context.Context, toEmail string) error
}

type reconService struct {
	taxpayers   port.TaxpayerRepository
	registrants port.TdsRegistrantRepository
	invoices    port.InvoiceBatchRepository
	payments    port.TdsPaymentRepository
	email       port.EmailSender
	now         func() time.Time
}

// NewReconService creates a new ReconService implementation.
func NewReconService(
	taxpayers port.TaxpayerRepository,
	registrants port.TdsRegistrantRepository,
	invoices port.InvoiceBatchRepository,
	payments port.TdsPaymentRepository,
	email port.EmailSender,
) ReconService {
	return &reconService{
		taxpayers:   taxpayers,
		registrants: registrants,
		invoices:    invoices,
		payments:    payments,
		email:       email,
		now:         time.Now,
	}
}

// NewReconServiceWithClock creates a ReconService with an injected clock.
func NewReconServiceWithClock(
	taxpayers port.TaxpayerRepository,
	registrants port.TdsRegistrantRepository,
	invoices port.InvoiceBatchRepository,
	payments port.TdsPaymentRepository,
	email port.EmailSender,
	now func() time.Time,
) ReconService {
	return &reconService{
		taxpayers:   taxpayers,
		registrants: registrants,
		invoices:    invoices,
		payments:    payments,
		email:       email,
		now:         now,
	}
}

// Report joins the taxpayer master, TDS registrations, the full invoice
// history, and the current period's payments into one reconciliation row
// per taxpayer. Any store failure aborts the whole report; there are no
// partial results.
//
// Liability is computed over invoices from all return periods while the
// payment lookup is scoped to the current period. This asymmetry matches
// the upstream reporting behaviour and is kept as-is.
func (s *reconService) Report(ctx context.Context) (*domain.ReconReport, error) {
	taxpayers, err := s.taxpayers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("recon.Report: %w", err)
	}
	registrants, err := s.registrants.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("recon.Report: %w", err)
	}
	batches, err := s.invoices.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("recon.Report: %w", err)
	}

	currentPeriod := domain.FormatPeriod(s.now())
	payments, err := s.payments.ListByPeriod(ctx, currentPeriod)
	if err != nil {
		return nil, fmt.Errorf("recon.Report: %w", err)
	}

	registrantByPan := make(map[string]*domain.TdsRegistrant, len(registrants))
	for i := range registrants {
		registrantByPan[registrants[i].LinkedPan] = &registrants[i]
	}

	paymentByGstin := make(map[string]*domain.TdsPayment, len(payments))
	for i := range payments {
		paymentByGstin[payments[i].GSTIN] = &payments[i]
	}

	invoicesByGstin := make(map[string][]domain.PurchaseInvoice)
	for i := range batches {
		invoicesByGstin[batches[i].GSTIN] = append(
			invoicesByGstin[batches[i].GSTIN], batches[i].PurchaseInvoices...)
	}

	details := make([]domain.ReconRow, 0, len(taxpayers))
	for i := range taxpayers {
		details = append(details, reconcile(&taxpayers[i], registrantByPan, paymentByGstin, invoicesByGstin))
	}

	// Largest underpayment first; source order is preserved for ties.
	sort.SliceStable(details, func(a, b int) bool {
		return details[a].TdsDifference > details[b].TdsDifference
	})

	summary := domain.ReconSummary{
		TotalGstins:        len(taxpayers),
		TotalTdsRegistered: len(registrants),
	}
	for i := range details {
		summary.TotalTdsValue += details[i].TotalTdsApplicable
		summary.TotalTdsPaid += details[i].TdsPaymentDone
		if details[i].TdsDifference > 0 {
			summary.TotalTdsPending += details[i].TdsDifference
		}
	}

	return &domain.ReconReport{Summary: summary, Details: details}, nil
}

// reconcile builds the reconciliation row for one taxpayer.
func reconcile(
	taxpayer *domain.Taxpayer,
	registrantByPan map[string]*domain.TdsRegistrant,
	paymentByGstin map[string]*domain.TdsPayment,
	invoicesByGstin map[string][]domain.PurchaseInvoice,
) domain.ReconRow {
	allInvoices := invoicesByGstin[taxpayer.GSTIN]
	eligibleCount, eligibleValue, tdsAmount := domain.TDSLiability(allInvoices)

	paymentDone := 0.0
	paymentStatus := domain.PaymentStatus("")
	if payment, ok := paymentByGstin[taxpayer.GSTIN]; ok {
		paymentDone = payment.DeducteeAmount
		paymentStatus = payment.PaymentStatus
	}
	tdsDifference := tdsAmount - paymentDone

	// A payment marked PAID but short in amount is downgraded for
	// reporting; PENDING, FAILED, and absent rows all report NOT_PAID.
	status := domain.ReconNotPaid
	switch paymentStatus {
	case domain.PaymentPaid:
		if tdsDifference <= 0 {
			status = domain.ReconFullyPaid
		} else {
			status = domain.ReconPartiallyPaid
		}
	case domain.PaymentPartiallyPaid:
		status = domain.ReconPartiallyPaid
	}

	tdsGstin := NoTdsGstinMarker
	isRegistered := false
	if registrant, ok := registrantByPan[taxpayer.PANNumber]; ok {
		tdsGstin = registrant.TdsGSTIN
		isRegistered = true
	}

	return domain.ReconRow{
		GstinNumber:        taxpayer.GSTIN,
		PanNumber:          taxpayer.PANNumber,
		LegalName:          taxpayer.LegalName,
		TdsGstinNumber:     tdsGstin,
		IsTdsRegistered:    isRegistered,
		TotalInvoices:      len(allInvoices),
		EligibleInvoices:   eligibleCount,
		TotalEligibleValue: eligibleValue,
		TotalTdsApplicable: tdsAmount,
		TdsPaymentDone:     paymentDone,
		TdsDifference:      tdsDifference,
		TdsStatus:          status,
	}
}

// EmailReport computes the current report and emails its pending-TDS
// summary to the given address.
func (s *reconService) EmailReport(ctx context.Context, toEmail string) error {
	report, err := s.Report(ctx)
	if err != nil {
		return err
	}
	if err := s.email.SendPendingTdsAlert(ctx, toEmail, report); err != nil {
		return fmt.Errorf("recon.EmailReport: %w", err)
	}
	return nil
}
