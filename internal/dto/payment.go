package dto

import (
	"time"

	"github.com/clubops/clubledger/internal/core/domain"
)

// PaymentResponse defines the data returned for a payment record.
type PaymentResponse struct {
	PaymentID         string    `json:"paymentID"`
	UserID            string    `json:"userID"`
	Amount            int64     `json:"amount"`
	CurrencyCode      string    `json:"currencyCode"`
	Provider          string    `json:"provider"`
	ExternalPaymentID string    `json:"externalPaymentID"`
	Status            string    `json:"status"`
	EntityType        *string   `json:"entityType,omitempty"`
	EntityID          *string   `json:"entityID,omitempty"`
	Description       string    `json:"description,omitempty"`
	SyncStatus        string    `json:"syncStatus"`
	CreatedAt         time.Time `json:"createdAt"`
}

// RefundResponse defines the data returned for a refund record.
type RefundResponse struct {
	RefundID         string    `json:"refundID"`
	PaymentID        string    `json:"paymentID"`
	Amount           int64     `json:"amount"`
	CurrencyCode     string    `json:"currencyCode"`
	Reason           string    `json:"reason,omitempty"`
	ExternalRefundID string    `json:"externalRefundID"`
	Status           string    `json:"status"`
	SyncStatus       string    `json:"syncStatus"`
	CreatedAt        time.Time `json:"createdAt"`
}

// PayoutResponse defines the data returned for a payout record.
type PayoutResponse struct {
	PayoutID         string     `json:"payoutID"`
	Amount           int64      `json:"amount"`
	Fee              int64      `json:"fee"`
	CurrencyCode     string     `json:"currencyCode"`
	Status           string     `json:"status"`
	ExternalPayoutID string     `json:"externalPayoutID"`
	ArrivalDate      *time.Time `json:"arrivalDate,omitempty"`
	PaymentIDs       []string   `json:"paymentIDs,omitempty"`
	RefundIDs        []string   `json:"refundIDs,omitempty"`
	SyncStatus       string     `json:"syncStatus"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// ToPaymentResponse converts a domain.Payment to its response DTO.
func ToPaymentResponse(p domain.Payment) PaymentResponse {
	var entityType *string
	if p.EntityType != nil {
		s := string(*p.EntityType)
		entityType = &s
	}
	return PaymentResponse{
		PaymentID:         p.PaymentID,
		UserID:            p.UserID,
		Amount:            p.Amount.Amount,
		CurrencyCode:      p.Amount.CurrencyCode,
		Provider:          p.Provider,
		ExternalPaymentID: p.ExternalPaymentID,
		Status:            string(p.Status),
		EntityType:        entityType,
		EntityID:          p.EntityID,
		Description:       p.Description,
		SyncStatus:        string(p.SyncStatus),
		CreatedAt:         p.CreatedAt,
	}
}

// ToRefundResponse converts a domain.Refund to its response DTO.
func ToRefundResponse(r domain.Refund) RefundResponse {
	return RefundResponse{
		RefundID:         r.RefundID,
		PaymentID:        r.PaymentID,
		Amount:           r.Amount.Amount,
		CurrencyCode:     r.Amount.CurrencyCode,
		Reason:           r.Reason,
		ExternalRefundID: r.ExternalRefundID,
		Status:           string(r.Status),
		SyncStatus:       string(r.SyncStatus),
		CreatedAt:        r.CreatedAt,
	}
}

// ToPayoutResponse converts a domain.Payout to its response DTO.
func ToPayoutResponse(p domain.Payout) PayoutResponse {
	return PayoutResponse{
		PayoutID:         p.PayoutID,
		Amount:           p.Amount.Amount,
		Fee:              p.Fee.Amount,
		CurrencyCode:     p.Amount.CurrencyCode,
		Status:           string(p.Status),
		ExternalPayoutID: p.ExternalPayoutID,
		ArrivalDate:      p.ArrivalDate,
		PaymentIDs:       p.PaymentIDs,
		RefundIDs:        p.RefundIDs,
		SyncStatus:       string(p.SyncStatus),
		CreatedAt:        p.CreatedAt,
	}
}
