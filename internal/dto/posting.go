package dto

import (
	"time"

	"github.com/clubops/clubledger/internal/core/domain"
)

// ProcessPaymentRequest carries the facts the payment-processing collaborator
// supplies for one completed payment. Amounts are minor units.
type ProcessPaymentRequest struct {
	UserID            string  `json:"userID" binding:"required"`
	Amount            int64   `json:"amount" binding:"min=0"` // Zero-amount payments (free items) are allowed
	CurrencyCode      string  `json:"currencyCode" binding:"required,len=3"`
	Provider          string  `json:"provider" binding:"required"`
	ExternalPaymentID string  `json:"externalPaymentID" binding:"required"`
	EntityType        *string `json:"entityType,omitempty" binding:"omitempty,oneof=EVENT MEMBERSHIP BOOKING DONATION ADMINISTRATION"`
	EntityID          *string `json:"entityID,omitempty"`
	Fee               int64   `json:"fee" binding:"min=0"` // Processor fee; zero produces no fee entries
	PaymentMethod     string  `json:"paymentMethod,omitempty"`
	Description       string  `json:"description,omitempty" binding:"max=1000"`
}

// ProcessRefundRequest carries the facts for a full or partial refund.
type ProcessRefundRequest struct {
	PaymentID        string `json:"paymentID" binding:"required"`
	Amount           int64  `json:"amount" binding:"required,gt=0"`
	Reason           string `json:"reason,omitempty" binding:"max=1000"`
	ExternalRefundID string `json:"externalRefundID" binding:"required"`
}

// RecordPayoutRequest describes a processor payout settling a batch of
// payments and refunds.
type RecordPayoutRequest struct {
	Amount           int64      `json:"amount" binding:"min=0"` // Net amount deposited
	Fee              int64      `json:"fee" binding:"min=0"`
	CurrencyCode     string     `json:"currencyCode" binding:"required,len=3"`
	ExternalPayoutID string     `json:"externalPayoutID" binding:"required"`
	ArrivalDate      *time.Time `json:"arrivalDate,omitempty"`
	PaymentIDs       []string   `json:"paymentIDs,omitempty"`
	RefundIDs        []string   `json:"refundIDs,omitempty"`
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID       string    `json:"entryID"`
	TransactionID string    `json:"transactionID"`
	AccountID     string    `json:"accountID"`
	Amount        int64     `json:"amount"`
	CurrencyCode  string    `json:"currencyCode"`
	DebitCredit   string    `json:"debitCredit"`
	Description   string    `json:"description,omitempty"`
	EntityType    *string   `json:"entityType,omitempty"`
	EntityID      *string   `json:"entityID,omitempty"`
	PaymentID     *string   `json:"paymentID,omitempty"`
	RefundID      *string   `json:"refundID,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TransactionResponse defines the data returned for a ledger transaction.
type TransactionResponse struct {
	TransactionID string    `json:"transactionID"`
	Type          string    `json:"type"`
	TotalAmount   int64     `json:"totalAmount"`
	CurrencyCode  string    `json:"currencyCode"`
	Status        string    `json:"status"`
	Description   string    `json:"description,omitempty"`
	PaymentID     *string   `json:"paymentID,omitempty"`
	RefundID      *string   `json:"refundID,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PaymentPostingResponse is the combined response for a posted payment.
type PaymentPostingResponse struct {
	PaymentID   string              `json:"paymentID"`
	Status      string              `json:"status"`
	Transaction TransactionResponse `json:"transaction"`
	Entries     []EntryResponse     `json:"entries"`
}

// RefundPostingResponse is the combined response for a posted refund.
type RefundPostingResponse struct {
	RefundID    string              `json:"refundID"`
	PaymentID   string              `json:"paymentID"`
	Status      string              `json:"status"`
	Transaction TransactionResponse `json:"transaction"`
	Entries     []EntryResponse     `json:"entries"`
}

// ToEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToEntryResponse(e domain.LedgerEntry) EntryResponse {
	var entityType *string
	if e.EntityType != nil {
		s := string(*e.EntityType)
		entityType = &s
	}
	return EntryResponse{
		EntryID:       e.EntryID,
		TransactionID: e.TransactionID,
		AccountID:     e.AccountID,
		Amount:        e.Amount.Amount,
		CurrencyCode:  e.Amount.CurrencyCode,
		DebitCredit:   string(e.DebitCredit),
		Description:   e.Description,
		EntityType:    entityType,
		EntityID:      e.EntityID,
		PaymentID:     e.PaymentID,
		RefundID:      e.RefundID,
		CreatedAt:     e.CreatedAt,
	}
}

// ToEntryResponseSlice converts a slice of entries to response DTOs.
func ToEntryResponseSlice(entries []domain.LedgerEntry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToEntryResponse(e)
	}
	return out
}

// ToTransactionResponse converts a domain.LedgerTransaction to its response DTO.
func ToTransactionResponse(t domain.LedgerTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Type:          string(t.Type),
		TotalAmount:   t.TotalAmount.Amount,
		CurrencyCode:  t.TotalAmount.CurrencyCode,
		Status:        string(t.Status),
		Description:   t.Description,
		PaymentID:     t.PaymentID,
		RefundID:      t.RefundID,
		CreatedAt:     t.CreatedAt,
	}
}
