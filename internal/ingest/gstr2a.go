// Package ingest parses GSTR2A spreadsheets and registry CSV files into
// domain records.
package ingest

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"tdstrack/internal/domain"
)

// FallbackReturnPeriod is used when a workbook contains no valid invoice
// from which to derive the period.
const FallbackReturnPeriod = "042023"

// GSTR2A export column headers. Matching is case-insensitive on the
// trimmed header text.
const (
	colInvoiceNumber = "invoice number"
	colInvoiceDate   = "invoice date"
	colInvoiceValue  = "invoice value (₹)"
	colPlaceOfSupply = "place of supply"
	colRate          = "rate (%)"
	colTaxableValue  = "taxable value (₹)"
	colCentralTax    = "central tax (₹)"
	colStateUtTax    = "state/ut tax (₹)"
)

// excelEpochOffset is the number of days between the spreadsheet serial
// epoch (1899-12-30) and the Unix epoch.
const excelEpochOffset = 25569

// GSTINFromFilename extracts the GSTIN encoded in a GSTR2A file name as
// the substring before the first underscore.
func GSTINFromFilename(name string) string {
	base := filepath.Base(name)
	if i := strings.Index(base, "_"); i >= 0 {
		return base[:i]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParseWorkbook reads the first sheet of a GSTR2A workbook and returns the
// valid purchase invoices plus the return period derived from the first
// valid invoice date (FallbackReturnPeriod when none exists). Rows missing
// the invoice number, date, or place of supply are dropped silently;
// unparseable numeric cells default to zero.
func ParseWorkbook(r io.Reader) ([]domain.PurchaseInvoice, string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, "", fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, "", domain.ErrEmptyWorkbook
	}

	cols := headerIndex(rows[0])
	cell := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var invoices []domain.PurchaseInvoice
	returnPeriod := ""

	for _, row := range rows[1:] {
		number := cell(row, colInvoiceNumber)
		dateStr := cell(row, colInvoiceDate)
		place := cell(row, colPlaceOfSupply)
		if number == "" || dateStr == "" || place == "" {
			continue
		}

		date, ok := parseDateCell(dateStr)
		if !ok {
			continue
		}
		if returnPeriod == "" {
			returnPeriod = domain.FormatPeriod(date)
		}

		invoices = append(invoices, domain.PurchaseInvoice{
			InvoiceNumber: number,
			InvoiceDate:   date,
			InvoiceValue:  cleanNumber(cell(row, colInvoiceValue)),
			PlaceOfSupply: place,
			Rate:          cleanNumber(cell(row, colRate)),
			TaxableValue:  cleanNumber(cell(row, colTaxableValue)),
			CentralTax:    cleanNumber(cell(row, colCentralTax)),
			StateUtTax:    cleanNumber(cell(row, colStateUtTax)),
		})
	}

	if returnPeriod == "" {
		returnPeriod = FallbackReturnPeriod
	}
	return invoices, returnPeriod, nil
}

// headerIndex maps lowercased trimmed header names to column indexes.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key != "" {
			cols[key] = i
		}
	}
	return cols
}

// parseDateCell parses either a DD-MM-YYYY string or a spreadsheet date
// serial (day 1 = 1899-12-30).
func parseDateCell(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if strings.Contains(s, "-") {
		t, err := time.ParseInLocation("02-01-2006", s, time.UTC)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(int64((serial-excelEpochOffset)*86400), 0).UTC(), true
}

// cleanNumber strips currency symbols, commas and other non-numeric
// characters before parsing. Unparseable values default to zero.
func cleanNumber(s string) float64 {
	var b strings.Builder
	for _, c := range s {
		if (c >= '0' && c <= '9') || c == '.' || c == '-' {
			b.WriteRune(c)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}
