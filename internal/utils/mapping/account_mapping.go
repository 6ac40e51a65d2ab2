package mapping

import (
	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/clubops/clubledger/internal/models"
)

// ToModelLedgerAccount converts a domain LedgerAccount to its DB row shape.
func ToModelLedgerAccount(d domain.LedgerAccount) models.LedgerAccount {
	return models.LedgerAccount{
		AccountID:     d.AccountID,
		Name:          d.Name,
		AccountType:   string(d.AccountType),
		NormalBalance: string(d.NormalBalance),
		CurrencyCode:  d.CurrencyCode,
		Description:   d.Description,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerAccount converts a DB row to a domain LedgerAccount.
func ToDomainLedgerAccount(m models.LedgerAccount) domain.LedgerAccount {
	return domain.LedgerAccount{
		AccountID:     m.AccountID,
		Name:          m.Name,
		AccountType:   domain.AccountType(m.AccountType),
		NormalBalance: domain.DebitCredit(m.NormalBalance),
		CurrencyCode:  m.CurrencyCode,
		Description:   m.Description,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
