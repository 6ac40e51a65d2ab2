package domain

import "time"

// TransactionType names the business event a transaction records.
type TransactionType string

const (
	TxnPayment    TransactionType = "PAYMENT"
	TxnRefund     TransactionType = "REFUND"
	TxnFee        TransactionType = "FEE"
	TxnAdjustment TransactionType = "ADJUSTMENT"
	TxnPayout     TransactionType = "PAYOUT"
)

// TransactionStatus indicates the lifecycle state of a ledger transaction.
type TransactionStatus string

const (
	TxnPending   TransactionStatus = "PENDING"
	TxnCompleted TransactionStatus = "COMPLETED"
	TxnReversed  TransactionStatus = "REVERSED"
)

// LedgerTransaction groups the balanced entries of one business event.
// Like entries, transactions are never updated or deleted after commit.
type LedgerTransaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID)
	Type          TransactionType   `json:"type"`
	TotalAmount   Money             `json:"totalAmount"` // Economic value of the event
	Status        TransactionStatus `json:"status"`
	Description   string            `json:"description"`
	PaymentID     *string           `json:"paymentID,omitempty"` // Soft reference to Payment
	RefundID      *string           `json:"refundID,omitempty"`  // Soft reference to Refund
	CreatedAt     time.Time         `json:"createdAt"`
	CreatedBy     string            `json:"createdBy"`
}
