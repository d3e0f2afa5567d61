package domain

import (
	"fmt"
	"strings"
	"time"
)

// TDS applicability rules: invoices with a taxable value strictly above
// the threshold attract TDS at the fixed rate.
const (
	TDSThreshold = 250000.0
	TDSRate      = 0.02
)

// HomeStateCode is the single jurisdiction this deployment tracks.
const HomeStateCode = "33"

// PANFromGSTIN extracts the 10-character PAN embedded at offset 2 of a
// 15-character GSTIN. Returns "" for inputs that are too short.
func PANFromGSTIN(gstin string) string {
	if len(gstin) < 12 {
		return ""
	}
	return gstin[2:12]
}

// EntityTypeFromLegalName infers the entity type by keyword match on the
// legal name. First match wins, in this order.
func EntityTypeFromLegalName(legalName string) EntityType {
	name := strings.ToLower(legalName)
	switch {
	case strings.Contains(name, "plc"):
		return EntityPLC
	case strings.Contains(name, "llc"):
		return EntityLLC
	case strings.Contains(name, "ltd"):
		return EntityLtd
	case strings.Contains(name, "inc"):
		return EntityInc
	case strings.Contains(name, "group"):
		return EntityGroup
	case strings.Contains(name, "sons"):
		return EntitySons
	default:
		return EntityOther
	}
}

// ComputeBatchSummary recomputes batch totals from the invoice list.
func ComputeBatchSummary(invoices []PurchaseInvoice) BatchSummary {
	s := BatchSummary{TotalInvoices: len(invoices)}
	for i := range invoices {
		s.TotalInvoiceValue += invoices[i].InvoiceValue
		s.TotalTaxableValue += invoices[i].TaxableValue
		s.TotalCentralTax += invoices[i].CentralTax
		s.TotalStateUtTax += invoices[i].StateUtTax
	}
	return s
}

// ComputeTotalTax recomputes a payment's total tax from its components.
func ComputeTotalTax(igst, cgst, sgst float64) float64 {
	return igst + cgst + sgst
}

// TDSLiability computes the TDS obligation over a set of invoices:
// invoices with TaxableValue strictly greater than TDSThreshold are
// eligible, and the liability is TDSRate of their combined taxable value.
func TDSLiability(invoices []PurchaseInvoice) (eligibleCount int, eligibleValue, tdsAmount float64) {
	for i := range invoices {
		if invoices[i].TaxableValue > TDSThreshold {
			eligibleCount++
			eligibleValue += invoices[i].TaxableValue
		}
	}
	return eligibleCount, eligibleValue, eligibleValue * TDSRate
}

// FormatPeriod renders a time as an MMYYYY period identifier.
func FormatPeriod(t time.Time) string {
	return fmt.Sprintf("%02d%d", int(t.Month()), t.Year())
}
