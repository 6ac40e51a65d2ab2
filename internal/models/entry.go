package models

import "time"

// LedgerEntry is the DB row shape for the append-only ledger_entries table.
// Amounts are stored as BIGINT minor units; the table carries UPDATE/DELETE
// triggers so rows can never be altered after commit.
type LedgerEntry struct {
	EntryID       string    `db:"entry_id"`
	TransactionID string    `db:"transaction_id"`
	AccountID     string    `db:"account_id"`
	Amount        int64     `db:"amount"`
	CurrencyCode  string    `db:"currency_code"`
	DebitCredit   string    `db:"debit_credit"`
	Description   string    `db:"description"`
	EntityType    *string   `db:"related_entity_type"`
	EntityID      *string   `db:"related_entity_id"`
	PaymentID     *string   `db:"payment_id"`
	RefundID      *string   `db:"refund_id"`
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
}
