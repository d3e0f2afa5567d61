// Package validator holds the identifier-format checks shared by the
// ingestion path and the API boundary.
package validator

import (
	"fmt"
	"regexp"

	"tdstrack/internal/domain"
)

var (
	gstinPattern    = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	tdsGstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z]2Z[0-9A-Z]$`)
	panPattern      = regexp.MustCompile(`^[A-Z]{5}\d{4}[A-Z]$`)
	periodPattern   = regexp.MustCompile(`^(0[1-9]|1[0-2])\d{4}$`)
)

// Result is the outcome of a format check.
type Result struct {
	Valid  bool
	Reason string
}

func ok() Result {
	return Result{Valid: true}
}

func invalid(format string, args ...interface{}) Result {
	return Result{Reason: fmt.Sprintf(format, args...)}
}

// GSTIN checks a 15-character GSTIN.
func GSTIN(v string) Result {
	if !gstinPattern.MatchString(v) {
		return invalid("%q is not a valid GSTIN", v)
	}
	return ok()
}

// TdsGSTIN checks a TDS-deduction GSTIN. The 13th character of a TDS
// registration is always "2".
func TdsGSTIN(v string) Result {
	if !tdsGstinPattern.MatchString(v) {
		return invalid("%q is not a valid TDS GSTIN", v)
	}
	return ok()
}

// PAN checks a 10-character PAN.
func PAN(v string) Result {
	if !panPattern.MatchString(v) {
		return invalid("%q is not a valid PAN", v)
	}
	return ok()
}

// Period checks an MMYYYY return or payment period.
func Period(v string) Result {
	if !periodPattern.MatchString(v) {
		return invalid("%q is not a valid period; format is MMYYYY", v)
	}
	return ok()
}

// StateCode checks the GSTIN state prefix against the single supported
// jurisdiction.
func StateCode(v string) Result {
	if v != domain.HomeStateCode {
		return invalid("%q is not a supported state code; only %s is allowed", v, domain.HomeStateCode)
	}
	return ok()
}
