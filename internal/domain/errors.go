package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidGSTIN         = errors.New("invalid GSTIN")
	ErrInvalidPAN           = errors.New("invalid PAN")
	ErrInvalidPeriod        = errors.New("invalid period; expected MMYYYY")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrNegativeAmount       = errors.New("amount cannot be negative")
	ErrEmptyWorkbook        = errors.New("no data rows found in workbook")
	ErrSourceFileMissing    = errors.New("source spreadsheet not found")
)
