package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Taxpayer is a GSTIN master record. The PAN and entity type are derived
// from the GSTIN and legal name on the write path; see derive.go.
type Taxpayer struct {
	GSTIN      string     `db:"gstin" json:"gstin"`
	LegalName  string     `db:"legal_name" json:"legal_name"`
	PANNumber  string     `db:"pan_number" json:"pan_number"`
	StateCode  string     `db:"state_code" json:"state_code"`
	EntityType EntityType `db:"entity_type" json:"entity_type"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// TdsRegistrant records that a PAN holds a separate TDS-deduction GSTIN.
// LinkedPan is a soft reference to Taxpayer.PANNumber; it is not enforced
// by the storage layer.
type TdsRegistrant struct {
	TdsGSTIN  string    `db:"tds_gstin" json:"tds_gstin"`
	LegalName string    `db:"legal_name" json:"legal_name"`
	LinkedPan string    `db:"linked_pan" json:"linked_pan"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PurchaseInvoice is a single GSTR2A invoice line. It is a value object
// carried inside an InvoiceBatch, never addressed on its own.
type PurchaseInvoice struct {
	InvoiceNumber string    `json:"invoice_number"`
	InvoiceDate   time.Time `json:"invoice_date"`
	InvoiceValue  float64   `json:"invoice_value"`
	PlaceOfSupply string    `json:"place_of_supply"`
	Rate          float64   `json:"rate"`
	TaxableValue  float64   `json:"taxable_value"`
	CentralTax    float64   `json:"central_tax"`
	StateUtTax    float64   `json:"state_ut_tax"`
}

// PurchaseInvoiceList stores the invoice lines of a batch as a JSONB column.
type PurchaseInvoiceList []PurchaseInvoice

// Value implements driver.Valuer for JSONB storage.
func (l PurchaseInvoiceList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]PurchaseInvoice{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB storage.
func (l *PurchaseInvoiceList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into PurchaseInvoiceList", src)
	}
}

// BatchSummary holds the totals of an invoice batch. It is always
// recomputed from the invoice list on write (ComputeBatchSummary) and is
// never independently settable.
type BatchSummary struct {
	TotalInvoices     int     `json:"total_invoices"`
	TotalInvoiceValue float64 `json:"total_invoice_value"`
	TotalTaxableValue float64 `json:"total_taxable_value"`
	TotalCentralTax   float64 `json:"total_central_tax"`
	TotalStateUtTax   float64 `json:"total_state_ut_tax"`
}

// InvoiceBatch groups the purchase invoices of one GSTIN for one return
// period (MMYYYY). The (gstin, return period) pair is unique; ingestion
// replaces a batch wholesale, never appends.
type InvoiceBatch struct {
	ID               uuid.UUID           `json:"id"`
	GSTIN            string              `json:"gstin"`
	ReturnPeriod     string              `json:"return_period"`
	PurchaseInvoices PurchaseInvoiceList `json:"purchase_invoices"`
	Summary          BatchSummary        `json:"summary"`
	SourceFileKey    string              `json:"source_file_key,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// TdsPayment is a TDS payment made for a GSTIN in a payment period
// (MMYYYY). The (gstin, payment period) pair is unique. TotalTaxAmount is
// recomputed as igst+cgst+sgst on every write.
type TdsPayment struct {
	GSTIN          string        `db:"gstin" json:"gstin"`
	PaymentPeriod  string        `db:"payment_period" json:"payment_period"`
	DeducteeAmount float64       `db:"deductee_amount" json:"deductee_amount"`
	IgstAmount     float64       `db:"igst_amount" json:"igst_amount"`
	CgstAmount     float64       `db:"cgst_amount" json:"cgst_amount"`
	SgstAmount     float64       `db:"sgst_amount" json:"sgst_amount"`
	TotalTaxAmount float64       `db:"total_tax_amount" json:"total_tax_amount"`
	PaymentStatus  PaymentStatus `db:"payment_status" json:"payment_status"`
	PaymentDate    *time.Time    `db:"payment_date" json:"payment_date"`
	ChallanNumber  string        `db:"challan_number" json:"challan_number"`
	Remarks        string        `db:"remarks" json:"remarks"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`
}

// Gstr2aTotals is a grouped-sum aggregate over invoice batches.
type Gstr2aTotals struct {
	TotalBatches      int     `db:"total_batches" json:"total_batches"`
	TotalInvoices     int     `db:"total_invoices" json:"total_invoices"`
	TotalInvoiceValue float64 `db:"total_invoice_value" json:"total_invoice_value"`
	TotalTaxableValue float64 `db:"total_taxable_value" json:"total_taxable_value"`
	TotalCentralTax   float64 `db:"total_central_tax" json:"total_central_tax"`
	TotalStateUtTax   float64 `db:"total_state_ut_tax" json:"total_state_ut_tax"`
}

// PaymentStatusSummary is the per-status aggregate of payments in a period.
type PaymentStatusSummary struct {
	PaymentStatus  PaymentStatus `db:"payment_status" json:"payment_status"`
	TotalTaxAmount float64       `db:"total_tax_amount" json:"total_tax_amount"`
	Count          int           `db:"count" json:"count"`
}

// ReconRow is one taxpayer's liability-vs-payment reconciliation. Field
// names follow the report contract consumed by the dashboard.
type ReconRow struct {
	GstinNumber        string      `json:"gstinNumber"`
	PanNumber          string      `json:"panNumber"`
	LegalName          string      `json:"legalName"`
	TdsGstinNumber     string      `json:"tdsGstinNumber"`
	IsTdsRegistered    bool        `json:"isTdsRegistered"`
	TotalInvoices      int         `json:"totalInvoices"`
	EligibleInvoices   int         `json:"eligibleInvoices"`
	TotalEligibleValue float64     `json:"totalEligibleValue"`
	TotalTdsApplicable float64     `json:"totalTdsApplicable"`
	TdsPaymentDone     float64     `json:"tdsPaymentDone"`
	TdsDifference      float64     `json:"tdsDifference"`
	TdsStatus          ReconStatus `json:"tdsStatus"`
}

// ReconSummary aggregates a reconciliation run. TotalTdsPending sums only
// positive differences; overpayments do not offset underpayments.
type ReconSummary struct {
	TotalGstins        int     `json:"totalGstins"`
	TotalTdsRegistered int     `json:"totalTdsRegistered"`
	TotalTdsValue      float64 `json:"totalTdsValue"`
	TotalTdsPaid       float64 `json:"totalTdsPaid"`
	TotalTdsPending    float64 `json:"totalTdsPending"`
}

// ReconReport is the full output of a reconciliation run, rows ordered by
// TdsDifference descending.
type ReconReport struct {
	Summary ReconSummary `json:"summary"`
	Details []ReconRow   `json:"details"`
}
