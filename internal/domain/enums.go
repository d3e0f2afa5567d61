package domain

// EntityType classifies a taxpayer by keywords in its legal name.
type EntityType string

const (
	EntityPLC   EntityType = "PLC"
	EntityLLC   EntityType = "LLC"
	EntityLtd   EntityType = "Ltd"
	EntityInc   EntityType = "Inc"
	EntityGroup EntityType = "Group"
	EntitySons  EntityType = "Sons"
	EntityOther EntityType = "Other"
)

// PaymentStatus is the persisted lifecycle of a TDS payment row.
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "PENDING"
	PaymentPaid          PaymentStatus = "PAID"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentFailed        PaymentStatus = "FAILED"
)

// ValidPaymentStatuses maps the accepted persisted payment statuses.
var ValidPaymentStatuses = map[PaymentStatus]bool{
	PaymentPending:       true,
	PaymentPaid:          true,
	PaymentPartiallyPaid: true,
	PaymentFailed:        true,
}

// ReconStatus is the reporting status of a reconciliation row. It is a
// separate type from PaymentStatus: NOT_PAID also covers the case where no
// payment row exists at all, which is never a persisted state.
type ReconStatus string

const (
	ReconNotPaid       ReconStatus = "NOT_PAID"
	ReconPartiallyPaid ReconStatus = "PARTIALLY_PAID"
	ReconFullyPaid     ReconStatus = "FULLY_PAID"
)
