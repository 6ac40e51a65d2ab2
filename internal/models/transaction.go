package models

import "time"

// LedgerTransaction is the DB row shape for the append-only
// ledger_transactions table.
type LedgerTransaction struct {
	TransactionID string    `db:"transaction_id"`
	Type          string    `db:"type"`
	TotalAmount   int64     `db:"total_amount"`
	CurrencyCode  string    `db:"currency_code"`
	Status        string    `db:"status"`
	Description   string    `db:"description"`
	PaymentID     *string   `db:"payment_id"`
	RefundID      *string   `db:"refund_id"`
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
}
