package mapping

import (
	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/clubops/clubledger/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to its DB row shape.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	var entityType *string
	if d.EntityType != nil {
		s := string(*d.EntityType)
		entityType = &s
	}
	return models.LedgerEntry{
		EntryID:       d.EntryID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Amount:        d.Amount.Amount,
		CurrencyCode:  d.Amount.CurrencyCode,
		DebitCredit:   string(d.DebitCredit),
		Description:   d.Description,
		EntityType:    entityType,
		EntityID:      d.EntityID,
		PaymentID:     d.PaymentID,
		RefundID:      d.RefundID,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainLedgerEntry converts a DB row to a domain LedgerEntry.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	var entityType *domain.RelatedEntityType
	if m.EntityType != nil {
		t := domain.RelatedEntityType(*m.EntityType)
		entityType = &t
	}
	return domain.LedgerEntry{
		EntryID:       m.EntryID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Amount:        domain.NewMoney(m.Amount, m.CurrencyCode),
		DebitCredit:   domain.DebitCredit(m.DebitCredit),
		Description:   m.Description,
		EntityType:    entityType,
		EntityID:      m.EntityID,
		PaymentID:     m.PaymentID,
		RefundID:      m.RefundID,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}

// ToDomainLedgerEntrySlice converts a slice of rows to domain entries.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		out[i] = ToDomainLedgerEntry(m)
	}
	return out
}

// ToModelLedgerTransaction converts a domain LedgerTransaction to its DB row shape.
func ToModelLedgerTransaction(d domain.LedgerTransaction) models.LedgerTransaction {
	return models.LedgerTransaction{
		TransactionID: d.TransactionID,
		Type:          string(d.Type),
		TotalAmount:   d.TotalAmount.Amount,
		CurrencyCode:  d.TotalAmount.CurrencyCode,
		Status:        string(d.Status),
		Description:   d.Description,
		PaymentID:     d.PaymentID,
		RefundID:      d.RefundID,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainLedgerTransaction converts a DB row to a domain LedgerTransaction.
func ToDomainLedgerTransaction(m models.LedgerTransaction) domain.LedgerTransaction {
	return domain.LedgerTransaction{
		TransactionID: m.TransactionID,
		Type:          domain.TransactionType(m.Type),
		TotalAmount:   domain.NewMoney(m.TotalAmount, m.CurrencyCode),
		Status:        domain.TransactionStatus(m.Status),
		Description:   m.Description,
		PaymentID:     m.PaymentID,
		RefundID:      m.RefundID,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}
