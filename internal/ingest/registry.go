package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// TaxpayerRow is one parsed line of a taxpayer registry CSV.
type TaxpayerRow struct {
	GSTIN     string
	LegalName string
}

// RegistrantRow is one parsed line of a TDS registrant CSV.
type RegistrantRow struct {
	TdsGSTIN  string
	LegalName string
	LinkedPan string
}

// ParseTaxpayerCSV reads a registry CSV whose header contains a GSTIN
// column and a legal-name column. Rows missing either value are skipped.
func ParseTaxpayerCSV(r io.Reader) ([]TaxpayerRow, error) {
	records, header, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	gstinCol := findColumn(header, "gstin")
	nameCol := findColumn(header, "legal name")
	if gstinCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("missing GSTIN or legal-name column in header %v", header)
	}

	var rows []TaxpayerRow
	for _, rec := range records {
		gstin := field(rec, gstinCol)
		name := field(rec, nameCol)
		if gstin == "" || name == "" {
			continue
		}
		rows = append(rows, TaxpayerRow{GSTIN: gstin, LegalName: name})
	}
	return rows, nil
}

// ParseRegistrantCSV reads a TDS registrant CSV whose header contains a
// TDS GSTIN column, a legal-name column, and a linked-PAN column.
func ParseRegistrantCSV(r io.Reader) ([]RegistrantRow, error) {
	records, header, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	gstinCol := findColumn(header, "tds gstin")
	nameCol := findColumn(header, "legal name")
	panCol := findColumn(header, "pan")
	if gstinCol < 0 || nameCol < 0 || panCol < 0 {
		return nil, fmt.Errorf("missing TDS GSTIN, legal-name, or PAN column in header %v", header)
	}

	var rows []RegistrantRow
	for _, rec := range records {
		gstin := field(rec, gstinCol)
		name := field(rec, nameCol)
		pan := field(rec, panCol)
		if gstin == "" || name == "" || pan == "" {
			continue
		}
		rows = append(rows, RegistrantRow{TdsGSTIN: gstin, LegalName: name, LinkedPan: pan})
	}
	return rows, nil
}

func readCSV(r io.Reader) (records [][]string, header []string, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("empty csv")
	}
	return all[1:], all[0], nil
}

// findColumn returns the index of the first header cell containing the
// given fragment, case-insensitively.
func findColumn(header []string, fragment string) int {
	for i, h := range header {
		if strings.Contains(strings.ToLower(h), fragment) {
			return i
		}
	}
	return -1
}

func field(rec []string, idx int) string {
	if idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}
