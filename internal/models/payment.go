package models

import "time"

// Payment is the DB row shape for the payments table.
type Payment struct {
	PaymentID         string  `db:"payment_id"`
	UserID            string  `db:"user_id"`
	Amount            int64   `db:"amount"`
	CurrencyCode      string  `db:"currency_code"`
	Provider          string  `db:"provider"`
	ExternalPaymentID string  `db:"external_payment_id"`
	Status            string  `db:"status"`
	EntityType        *string `db:"related_entity_type"`
	EntityID          *string `db:"related_entity_id"`
	PaymentMethod     string  `db:"payment_method"`
	Description       string  `db:"description"`
	SyncFields
	AuditFields
}

// Refund is the DB row shape for the refunds table.
type Refund struct {
	RefundID         string `db:"refund_id"`
	PaymentID        string `db:"payment_id"`
	Amount           int64  `db:"amount"`
	CurrencyCode     string `db:"currency_code"`
	Reason           string `db:"reason"`
	ExternalRefundID string `db:"external_refund_id"`
	Status           string `db:"status"`
	SyncFields
	AuditFields
}

// Payout is the DB row shape for the payouts table. Settled payments and
// refunds are associated through payout_items.
type Payout struct {
	PayoutID         string     `db:"payout_id"`
	Amount           int64      `db:"amount"`
	Fee              int64      `db:"fee"`
	CurrencyCode     string     `db:"currency_code"`
	Status           string     `db:"status"`
	ExternalPayoutID string     `db:"external_payout_id"`
	ArrivalDate      *time.Time `db:"arrival_date"`
	SyncFields
	AuditFields
}

// SyncFields carries external accounting sync metadata columns.
type SyncFields struct {
	SyncStatus           string     `db:"sync_status"`
	ExternalAccountingID *string    `db:"external_accounting_id"`
	SyncAttemptedAt      *time.Time `db:"sync_attempted_at"`
	SyncError            *string    `db:"sync_error"`
}
