package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tdstrack/internal/domain"
)

func TestPANFromGSTIN(t *testing.T) {
	assert.Equal(t, "ABCDE1234F", domain.PANFromGSTIN("33ABCDE1234F1Z5"))
	assert.Equal(t, "", domain.PANFromGSTIN("33ABCDE"))
	assert.Equal(t, "", domain.PANFromGSTIN(""))
}

func TestEntityTypeFromLegalName(t *testing.T) {
	cases := []struct {
		name     string
		expected domain.EntityType
	}{
		{"Acme PLC", domain.EntityPLC},
		{"Acme LLC", domain.EntityLLC},
		{"Acme Traders Ltd", domain.EntityLtd},
		{"acme ltd", domain.EntityLtd},
		{"Acme Inc", domain.EntityInc},
		{"Miller Group", domain.EntityGroup},
		{"Kumar and Sons", domain.EntitySons},
		{"Acme Traders", domain.EntityOther},
		// "plc" outranks "group" when both match.
		{"Group Holdings PLC", domain.EntityPLC},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, domain.EntityTypeFromLegalName(tc.name), tc.name)
	}
}

func TestTDSLiability_ThresholdIsStrict(t *testing.T) {
	invoices := []domain.PurchaseInvoice{
		{TaxableValue: 250000},    // at the threshold, not eligible
		{TaxableValue: 250000.01}, // just above, eligible
		{TaxableValue: 100000},
	}

	count, value, tds := domain.TDSLiability(invoices)
	assert.Equal(t, 1, count)
	assert.InDelta(t, 250000.01, value, 1e-9)
	assert.InDelta(t, 5000.0002, tds, 1e-9)
}

func TestTDSLiability_Empty(t *testing.T) {
	count, value, tds := domain.TDSLiability(nil)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0.0, value)
	assert.Equal(t, 0.0, tds)
}

func TestComputeBatchSummary(t *testing.T) {
	invoices := []domain.PurchaseInvoice{
		{InvoiceValue: 118000, TaxableValue: 100000, CentralTax: 9000, StateUtTax: 9000},
		{InvoiceValue: 59000, TaxableValue: 50000, CentralTax: 4500, StateUtTax: 4500},
	}

	s := domain.ComputeBatchSummary(invoices)
	assert.Equal(t, 2, s.TotalInvoices)
	assert.InDelta(t, 177000.0, s.TotalInvoiceValue, 1e-9)
	assert.InDelta(t, 150000.0, s.TotalTaxableValue, 1e-9)
	assert.InDelta(t, 13500.0, s.TotalCentralTax, 1e-9)
	assert.InDelta(t, 13500.0, s.TotalStateUtTax, 1e-9)
}

func TestComputeTotalTax(t *testing.T) {
	assert.Equal(t, 6000.0, domain.ComputeTotalTax(6000, 0, 0))
	assert.Equal(t, 6000.0, domain.ComputeTotalTax(0, 3000, 3000))
}

func TestFormatPeriod(t *testing.T) {
	assert.Equal(t, "042023", domain.FormatPeriod(time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "122025", domain.FormatPeriod(time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "012024", domain.FormatPeriod(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)))
}
