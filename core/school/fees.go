package school

import "time"

const CertStatusIssued = "issued"

// FeeCertificate records a single payment event against a student's
// balance. Certificates are immutable once created; the invariant
// RemainingDue = PreviousDue - AmountPaid holds at issuance time.
type FeeCertificate struct {
	ID              string    `json:"id"`
	StudentCode     string    `json:"studentCode"`
	StudentName     string    `json:"studentName"`
	AmountPaid      int       `json:"amountPaid"`
	PreviousDue     int       `json:"previousDue"`
	RemainingDue    int       `json:"remainingDue"`
	TotalPaidToDate int       `json:"totalPaidToDate"`
	GeneratedBy     string    `json:"generatedBy"`
	GeneratedAt     time.Time `json:"generatedAt"` // UTC
	Status          string    `json:"status"`
}
