package domain

import "time"

// SystemUserID marks records created by the system itself rather than on
// behalf of a member, e.g. seeded accounts and payout postings.
const SystemUserID = "SYSTEM"

// AuditFields holds standard audit information for mutable records
// (payments, refunds, payouts). Ledger entries and transactions carry
// only creation metadata since they are never updated.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
