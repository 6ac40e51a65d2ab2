package mapping

import (
	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/clubops/clubledger/internal/models"
)

// ToModelPayment converts a domain Payment to its DB row shape.
func ToModelPayment(d domain.Payment) models.Payment {
	var entityType *string
	if d.EntityType != nil {
		s := string(*d.EntityType)
		entityType = &s
	}
	return models.Payment{
		PaymentID:         d.PaymentID,
		UserID:            d.UserID,
		Amount:            d.Amount.Amount,
		CurrencyCode:      d.Amount.CurrencyCode,
		Provider:          d.Provider,
		ExternalPaymentID: d.ExternalPaymentID,
		Status:            string(d.Status),
		EntityType:        entityType,
		EntityID:          d.EntityID,
		PaymentMethod:     d.PaymentMethod,
		Description:       d.Description,
		SyncFields:        ToModelSyncFields(d.SyncFields),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a DB row to a domain Payment.
func ToDomainPayment(m models.Payment) domain.Payment {
	var entityType *domain.RelatedEntityType
	if m.EntityType != nil {
		t := domain.RelatedEntityType(*m.EntityType)
		entityType = &t
	}
	return domain.Payment{
		PaymentID:         m.PaymentID,
		UserID:            m.UserID,
		Amount:            domain.NewMoney(m.Amount, m.CurrencyCode),
		Provider:          m.Provider,
		ExternalPaymentID: m.ExternalPaymentID,
		Status:            domain.PaymentStatus(m.Status),
		EntityType:        entityType,
		EntityID:          m.EntityID,
		PaymentMethod:     m.PaymentMethod,
		Description:       m.Description,
		SyncFields:        ToDomainSyncFields(m.SyncFields),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelRefund converts a domain Refund to its DB row shape.
func ToModelRefund(d domain.Refund) models.Refund {
	return models.Refund{
		RefundID:         d.RefundID,
		PaymentID:        d.PaymentID,
		Amount:           d.Amount.Amount,
		CurrencyCode:     d.Amount.CurrencyCode,
		Reason:           d.Reason,
		ExternalRefundID: d.ExternalRefundID,
		Status:           string(d.Status),
		SyncFields:       ToModelSyncFields(d.SyncFields),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRefund converts a DB row to a domain Refund.
func ToDomainRefund(m models.Refund) domain.Refund {
	return domain.Refund{
		RefundID:         m.RefundID,
		PaymentID:        m.PaymentID,
		Amount:           domain.NewMoney(m.Amount, m.CurrencyCode),
		Reason:           m.Reason,
		ExternalRefundID: m.ExternalRefundID,
		Status:           domain.RefundStatus(m.Status),
		SyncFields:       ToDomainSyncFields(m.SyncFields),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayout converts a domain Payout to its DB row shape.
func ToModelPayout(d domain.Payout) models.Payout {
	return models.Payout{
		PayoutID:         d.PayoutID,
		Amount:           d.Amount.Amount,
		Fee:              d.Fee.Amount,
		CurrencyCode:     d.Amount.CurrencyCode,
		Status:           string(d.Status),
		ExternalPayoutID: d.ExternalPayoutID,
		ArrivalDate:      d.ArrivalDate,
		SyncFields:       ToModelSyncFields(d.SyncFields),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayout converts a DB row to a domain Payout. Associated payment and
// refund ids are loaded separately from payout_items.
func ToDomainPayout(m models.Payout) domain.Payout {
	return domain.Payout{
		PayoutID:         m.PayoutID,
		Amount:           domain.NewMoney(m.Amount, m.CurrencyCode),
		Fee:              domain.NewMoney(m.Fee, m.CurrencyCode),
		Status:           domain.PayoutStatus(m.Status),
		ExternalPayoutID: m.ExternalPayoutID,
		ArrivalDate:      m.ArrivalDate,
		SyncFields:       ToDomainSyncFields(m.SyncFields),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
