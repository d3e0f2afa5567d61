package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tdstrack/internal/domain"
	"tdstrack/internal/service"
	"tdstrack/mocks"
)

var reconClock = func() time.Time {
	return time.Date(2023, time.April, 15, 10, 0, 0, 0, time.UTC)
}

func newReconFixture() (*mocks.MockTaxpayerRepo, *mocks.MockRegistrantRepo, *mocks.MockInvoiceBatchRepo, *mocks.MockPaymentRepo, *mocks.MockEmailSender, service.ReconService) {
	taxpayers := new(mocks.MockTaxpayerRepo)
	registrants := new(mocks.MockRegistrantRepo)
	invoices := new(mocks.MockInvoiceBatchRepo)
	payments := new(mocks.MockPaymentRepo)
	email := new(mocks.MockEmailSender)
	svc := service.NewReconServiceWithClock(taxpayers, registrants, invoices, payments, email, reconClock)
	return taxpayers, registrants, invoices, payments, email, svc
}

func batchFor(gstin, period string, taxableValues ...float64) domain.InvoiceBatch {
	invoices := make(domain.PurchaseInvoiceList, 0, len(taxableValues))
	for _, tv := range taxableValues {
		invoices = append(invoices, domain.PurchaseInvoice{
			InvoiceNumber: "INV-1",
			TaxableValue:  tv,
			InvoiceValue:  tv * 1.18,
		})
	}
	return domain.InvoiceBatch{
		GSTIN:            gstin,
		ReturnPeriod:     period,
		PurchaseInvoices: invoices,
		Summary:          domain.ComputeBatchSummary(invoices),
	}
}

func TestReconService_Report_NoEligibleInvoices(t *testing.T) {
	taxpayers, registrants, invoices, payments, _, svc := newReconFixture()

	taxpayers.On("ListAll", mock.Anything).Return([]domain.Taxpayer{
		{GSTIN: "33ABCDE1234F1Z5", PANNumber: "ABCDE1234F", LegalName: "Miller Group"},
	}, nil)
	registrants.On("ListAll", mock.Anything).Return([]domain.TdsRegistrant{}, nil)
	invoices.On("ListAll", mock.Anything).Return([]domain.InvoiceBatch{
		batchFor("33ABCDE1234F1Z5", "042023", 100000, 250000),
	}, nil)
	payments.On("ListByPeriod", mock.Anything, "042023").Return([]domain.TdsPayment{}, nil)

	report, err := svc.Report(context.Background())
	assert.NoError(t, err)
	assert.Len(t, report.Details, 1)

	row := report.Details[0]
	assert.Equal(t, 2, row.TotalInvoices)
	assert.Equal(t, 0, row.EligibleInvoices)
	assert.Equal(t, 0.0, row.TotalTdsApplicable)
	assert.Equal(t, 0.0, row.TdsDifference)
	assert.Equal(t, domain.ReconNotPaid, row.TdsStatus)
	assert.Equal(t, "-", row.TdsGstinNumber)
	assert.False(t, row.IsTdsRegistered)
}

func TestReconService_Report_ThresholdIsStrict(t *testing.T) {
	taxpayers, registrants, invoices, payments, _, svc := newReconFixture()

	taxpayers.On("ListAll", mock.Anything).Return([]domain.Taxpayer{
		{GSTIN: "33ABCDE1234F1Z5", PANNumber: "ABCDE1234F"},
	}, nil)
	registrants.On("ListAll", mock.Anything).Return([]domain.TdsRegistrant{}, nil)
	invoices.On("ListAll", mock.Anything).Return([]domain.InvoiceBatch{
		batchFor("33ABCDE1234F1Z5", "042023", 300000, 100000),
	}, nil)
	payments.On("ListByPeriod", mock.Anything, "042023").Return([]domain.TdsPayment{}, nil)

	report, err := svc.Report(context.Background())
	assert.NoError(t, err)

	row := report.Details[0]
	assert.Equal(t, 1, row.EligibleInvoices)
	assert.Equal(t, 300000.0, row.TotalEligibleValue)
	assert.InDelta(t, 6000.0, row.TotalTdsApplicable, 1e-9)
	assert.InDelta(t, 6000.0, row.TdsDifference, 1e-9)
	assert.Equal(t, domain.ReconNotPaid, row.TdsStatus)
}

func TestReconService_Report_PaidInFull(t *testing.T) {
	taxpayers, registrants, invoices, payments, _, svc := newReconFixture()

	taxpayers.On("ListAll", mock.Anything).Return([]domain.Taxpayer{
		{GSTIN: "33ABCDE1234F1Z5", PANNumber: "ABCDE1234F"},
	}, nil)
	registrants.On("ListAll", mock.Anything).Return([]domain.TdsRegistrant{
		{TdsGSTIN: "33ABCDE1234F2Z5", LinkedPan: "ABCDE1234F"},
	}, nil)
	invoices.On("ListAll", mock.Anything).Return([]domain.InvoiceBatch{
		batchFor("33ABCDE1234F1Z5", "042023", 300000),
	}, nil)
	payments.On("ListByPeriod", mock.Anything, "042023").Return([]domain.TdsPayment{
		{GSTIN: "33ABCDE1234F1Z5", PaymentPeriod: "042023", DeducteeAmount: 6000, PaymentStatus: domain.PaymentPaid},
	}, nil)

	report, err := svc.Report(context.Background())
	assert.NoError(t, err)

	row := report.Details[0]
	assert.Equal(t, domain.ReconFullyPaid, row.TdsStatus)
	assert.InDelta(t, 0.0, row.TdsDifference, 1e-9)
	assert.Equal(t, "33ABCDE1234F2Z5", row.TdsGstinNumber)
	assert.True(t, row.IsTdsRegistered)
}

func TestReconService_Report_PaidButShortIsPartiallyPaid(t *testing.T) {
	taxpayers, registrants, invoices, payments, _, svc := newReconFixture()

	taxpayers.On("ListAll", mock.Anything).Return([]domain.Taxpayer{
		{GSTIN: "33ABCDE1234F1Z5", PANNumber: "ABCDE1234F"},
	}, nil)
	registrants.On("ListAll", mock.Anything).Return([]domain.TdsRegistrant{}, nil)
	invoices.On("ListAll", mock.Anything).Return([]domain.InvoiceBatch{
		batchFor("33ABCDE1234F1Z5", "042023", 300000),
	}, nil)
	payments.On("ListByPeriod", mock.Anything, "042023").Return([]domain.TdsPayment{
		{GSTIN: "33ABCDE1234F1Z5", PaymentPeriod: "042023", DeducteeAmount: 5000, PaymentStatus: domain.PaymentPaid},
	}, nil)

	report, err := svc.Report(context.Background())
	assert.NoError(t, err)

	row := report.Details[0]
	assert.Equal(t, domain.ReconPartiallyPaid, row.TdsStatus)
	assert.InDelta(t, 1000.0, row.TdsDifference, 1e-9)
}

func TestReconService_Report_PendingPaymentIsNotPaid(t *testing.T) {
	taxpayers, registrants, invoices, payments, _, svc := newReconFixture()

	taxpayers.On("ListAll", mock.Anything).Return([]domain.Taxpayer{
		{GSTIN: "33ABCDE1234F1Z5", PANNumber: "ABCDE1234F"},
	}, nil)
	registrants.On("ListAll", mock.Anything).Return([]domain.TdsRegistrant{}, nil)
	invoices.On("ListAll", mock.Anything).Return([]domain.InvoiceBatch{
		batchFor("33ABCDE1234F1Z5", "042023", 300000),
	}, nil)
	payments.On("ListByPeriod", mock.Anything, "042023").Return([]domain.TdsPayment{
		{GSTIN: "33ABCDE1234F1Z5", PaymentPeriod: "042023", DeducteeAmount: 4000, PaymentStatus: domain.PaymentPending},
	}, nil)

	report, err := svc.Report(context.Background())
	assert.NoError(t, err)

	row := report.Details[0]
	assert.Equal(t, domain.ReconNotPaid, row.TdsStatus)
	assert.InDelta(t, 2000.0, row.TdsDifference, 1e-9)
	assert.Equal(t, 4000.0, row.TdsPaymentDone)
}

func TestReconService_Report_SortsByDifferenceDescending(t *testing.T) {
	taxpayers, registrants, invoices, payments, _, svc := newReconFixture()

	taxpayers.On("ListAll", mock.Anything).Return([]domain.Taxpayer{
		{GSTIN: "33AAAAA1111A1Z1", PANNumber: "AAAAA1111A"},
		{GSTIN: "33BBBBB2222B1Z2", PANNumber: "BBBBB2222B"},
		{GSTIN: "33CCCCC3333C1Z3", PANNumber: "CCCCC3333C"},
	}, nil)
	registrants.On("ListAll", mock.Anything).Return([]domain.TdsRegistrant{}, nil)
	invoices.On("ListAll", mock.Anything).Return([]domain.InvoiceBatch{
		batchFor("33AAAAA1111A1Z1", "042023", 275000), // liability 5500
		batchFor("33BBBBB2222B1Z2", "042023", 500000), // liability 10000
		batchFor("33CCCCC3333C1Z3", "042023", 300000), // liability 6000
	}, nil)
	payments.On("ListByPeriod", mock.Anything, "042023").Return([]domain.TdsPayment{
		{GSTIN: "33CCCCC3333C1Z3", DeducteeAmount: 7000, PaymentStatus: domain.PaymentPaid},
	}, nil)

	report, err := svc.Report(context.Background())
	assert.NoError(t, err)
	assert.Len(t, report.Details, 3)

	assert.Equal(t, "33BBBBB2222B1Z2", report.Details[0].GstinNumber)
	assert.Equal(t, "33AAAAA1111A1Z1", report.Details[1].GstinNumber)
	assert.Equal(t, "33CCCCC3333C1Z3", report.Details[2].GstinNumber)
	assert.InDelta(t, -1000.0, report.Details[2].TdsDifference, 1e-9)
}

func TestReconService_Report_SummaryIgnoresOverpayments(t *testing.T) {
	taxpayers, registrants, invoices, payments, _, svc := newReconFixture()

	taxpayers.On("ListAll", mock.Anything).Return([]domain.Taxpayer{
		{GSTIN: "33AAAAA1111A1Z1", PANNumber: "AAAAA1111A"},
		{GSTIN: "33BBBBB2222B1Z2", PANNumber: "BBBBB2222B"},
	}, nil)
	registrants.On("ListAll", mock.Anything).Return([]domain.TdsRegistrant{
		{TdsGSTIN: "33AAAAA1111A2Z1", LinkedPan: "AAAAA1111A"},
	}, nil)
	invoices.On("ListAll", mock.Anything).Return([]domain.InvoiceBatch{
		batchFor("33AAAAA1111A1Z1", "042023", 300000), // liability 6000
		batchFor("33BBBBB2222B1Z2", "042023", 400000), // liability 8000
	}, nil)
	payments.On("ListByPeriod", mock.Anything, "042023").Return([]domain.TdsPayment{
		{GSTIN: "33AAAAA1111A1Z1", DeducteeAmount: 7000, PaymentStatus: domain.PaymentPaid},
		{GSTIN: "33BBBBB2222B1Z2", DeducteeAmount: 3000, PaymentStatus: domain.PaymentPartiallyPaid},
	}, nil)

	report, err := svc.Report(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, 2, report.Summary.TotalGstins)
	assert.Equal(t, 1, report.Summary.TotalTdsRegistered)
	assert.InDelta(t, 14000.0, report.Summary.TotalTdsValue, 1e-9)
	assert.InDelta(t, 10000.0, report.Summary.TotalTdsPaid, 1e-9)
	// The A overpayment of 1000 must not offset the B shortfall of 5000.
	assert.InDelta(t, 5000.0, report.Summary.TotalTdsPending, 1e-9)
}

func TestReconService_Report_AggregatesBatchesAcrossPeriods(t *testing.T) {
	taxpayers, registrants, invoices, payments, _, svc := newReconFixture()

	taxpayers.On("ListAll", mock.Anything).Return([]domain.Taxpayer{
		{GSTIN: "33ABCDE1234F1Z5", PANNumber: "ABCDE1234F"},
	}, nil)
	registrants.On("ListAll", mock.Anything).Return([]domain.TdsRegistrant{}, nil)
	invoices.On("ListAll", mock.Anything).Return([]domain.InvoiceBatch{
		batchFor("33ABCDE1234F1Z5", "032023", 300000),
		batchFor("33ABCDE1234F1Z5", "042023", 400000),
	}, nil)
	payments.On("ListByPeriod", mock.Anything, "042023").Return([]domain.TdsPayment{}, nil)

	report, err := svc.Report(context.Background())
	assert.NoError(t, err)

	row := report.Details[0]
	assert.Equal(t, 2, row.TotalInvoices)
	assert.InDelta(t, 14000.0, row.TotalTdsApplicable, 1e-9)
}

func TestReconService_Report_UsesCurrentPeriodForPayments(t *testing.T) {
	taxpayers, registrants, invoices, payments, _, svc := newReconFixture()

	taxpayers.On("ListAll", mock.Anything).Return([]domain.Taxpayer{}, nil)
	registrants.On("ListAll", mock.Anything).Return([]domain.TdsRegistrant{}, nil)
	invoices.On("ListAll", mock.Anything).Return([]domain.InvoiceBatch{}, nil)
	payments.On("ListByPeriod", mock.Anything, "042023").Return([]domain.TdsPayment{}, nil)

	_, err := svc.Report(context.Background())
	assert.NoError(t, err)
	payments.AssertCalled(t, "ListByPeriod", mock.Anything, "042023")
}

func TestReconService_Report_PropagatesRepoError(t *testing.T) {
	taxpayers, _, _, _, _, svc := newReconFixture()

	dbErr := errors.New("connection refused")
	taxpayers.On("ListAll", mock.Anything).Return(nil, dbErr)

	report, err := svc.Report(context.Background())
	assert.Nil(t, report)
	assert.ErrorIs(t, err, dbErr)
}

func TestReconService_EmailReport_SendsComputedReport(t *testing.T) {
	taxpayers, registrants, invoices, payments, email, svc := newReconFixture()

	taxpayers.On("ListAll", mock.Anything).Return([]domain.Taxpayer{}, nil)
	registrants.On("ListAll", mock.Anything).Return([]domain.TdsRegistrant{}, nil)
	invoices.On("ListAll", mock.Anything).Return([]domain.InvoiceBatch{}, nil)
	payments.On("ListByPeriod", mock.Anything, "042023").Return([]domain.TdsPayment{}, nil)
	email.On("SendPendingTdsAlert", mock.Anything, "cfo@example.com", mock.Anything).Return(nil)

	err := svc.EmailReport(context.Background(), "cfo@example.com")
	assert.NoError(t, err)
	email.AssertExpectations(t)
}

func TestReconService_EmailReport_PropagatesSendError(t *testing.T) {
	taxpayers, registrants, invoices, payments, email, svc := newReconFixture()

	taxpayers.On("ListAll", mock.Anything).Return([]domain.Taxpayer{}, nil)
	registrants.On("ListAll", mock.Anything).Return([]domain.TdsRegistrant{}, nil)
	invoices.On("ListAll", mock.Anything).Return([]domain.InvoiceBatch{}, nil)
	payments.On("ListByPeriod", mock.Anything, "042023").Return([]domain.TdsPayment{}, nil)

	sendErr := errors.New("ses throttled")
	email.On("SendPendingTdsAlert", mock.Anything, "cfo@example.com", mock.Anything).Return(sendErr)

	err := svc.EmailReport(context.Background(), "cfo@example.com")
	assert.ErrorIs(t, err, sendErr)
}
