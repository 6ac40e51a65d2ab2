package domain

import "time"

// PaymentStatus tracks the lifecycle of a payment as reported by the
// payment-processing collaborator.
type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "PENDING"
	PaymentCompleted         PaymentStatus = "COMPLETED"
	PaymentPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
	PaymentRefunded          PaymentStatus = "REFUNDED"
	PaymentFailed            PaymentStatus = "FAILED"
)

// RefundStatus tracks the lifecycle of a refund.
type RefundStatus string

const (
	RefundPending   RefundStatus = "PENDING"
	RefundCompleted RefundStatus = "COMPLETED"
	RefundFailed    RefundStatus = "FAILED"
)

// PayoutStatus tracks the lifecycle of a processor payout.
type PayoutStatus string

const (
	PayoutPending   PayoutStatus = "PENDING"
	PayoutInTransit PayoutStatus = "IN_TRANSIT"
	PayoutPaid      PayoutStatus = "PAID"
)

// SyncStatus reflects the state of the external-accounting-sync collaborator
// for a record. The ledger core only updates these as metadata.
type SyncStatus string

const (
	SyncPending SyncStatus = "PENDING"
	SyncSynced  SyncStatus = "SYNCED"
	SyncFailed  SyncStatus = "FAILED"
)

// SyncFields carries external accounting sync metadata on payments, refunds
// and payouts. Updating these never touches ledger rows.
type SyncFields struct {
	SyncStatus           SyncStatus `json:"syncStatus"`
	ExternalAccountingID *string    `json:"externalAccountingID,omitempty"`
	SyncAttemptedAt      *time.Time `json:"syncAttemptedAt,omitempty"`
	SyncError            *string    `json:"syncError,omitempty"`
}

// Payment is a source-of-truth payment record owned by the payment-processing
// collaborator. A completed payment has exactly one PAYMENT-type ledger
// transaction with a non-empty, balanced entry set.
type Payment struct {
	PaymentID         string             `json:"paymentID"` // Primary Key (UUID)
	UserID            string             `json:"userID"`
	Amount            Money              `json:"amount"`
	Provider          string             `json:"provider"`          // e.g. "stripe"
	ExternalPaymentID string             `json:"externalPaymentID"` // Unique processor id
	Status            PaymentStatus      `json:"status"`
	EntityType        *RelatedEntityType `json:"entityType,omitempty"`
	EntityID          *string            `json:"entityID,omitempty"`
	PaymentMethod     string             `json:"paymentMethod"` // Optional collaborator reference
	Description       string             `json:"description"`
	SyncFields
	AuditFields
}

// Refund is a source-of-truth refund record. A completed refund references an
// existing payment and has exactly one REFUND-type ledger transaction whose
// entries are tagged with both the payment and refund ids.
type Refund struct {
	RefundID         string       `json:"refundID"`  // Primary Key (UUID)
	PaymentID        string       `json:"paymentID"` // The payment being refunded
	Amount           Money        `json:"amount"`
	Reason           string       `json:"reason"`
	ExternalRefundID string       `json:"externalRefundID"` // Unique processor id
	Status           RefundStatus `json:"status"`
	SyncFields
	AuditFields
}

// Payout groups settled payments and refunds paid out together by the
// external processor.
type Payout struct {
	PayoutID         string       `json:"payoutID"` // Primary Key (UUID)
	Amount           Money        `json:"amount"`   // Net amount deposited
	Fee              Money        `json:"fee"`      // Processor fee withheld
	Status           PayoutStatus `json:"status"`
	ExternalPayoutID string       `json:"externalPayoutID"`
	ArrivalDate      *time.Time   `json:"arrivalDate,omitempty"`
	PaymentIDs       []string     `json:"paymentIDs,omitempty"` // Settled payments
	RefundIDs        []string     `json:"refundIDs,omitempty"`  // Settled refunds
	SyncFields
	AuditFields
}
