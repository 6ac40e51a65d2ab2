package accounting

import (
	"fmt"

	"github.com/clubops/clubledger/internal/core/domain"
)

// SignedAmount applies the correct sign to an entry amount based on account
// type and posting side.
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func SignedAmount(entry domain.LedgerEntry, accountType domain.AccountType) (int64, error) {
	signed := entry.Amount.Amount
	isDebit := entry.DebitCredit == domain.Debit

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signed = -signed
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			signed = -signed
		}
	default:
		return 0, fmt.Errorf("unknown account type %q for account ID %s", accountType, entry.AccountID)
	}
	return signed, nil
}

// ValidateBalanced checks that an entry set nets to zero per currency:
// sum of debits equals sum of credits. Entry magnitudes must be non-negative;
// zero-amount entries are allowed (free items still post a balanced pair).
func ValidateBalanced(entries []domain.LedgerEntry) error {
	if len(entries) < 2 {
		return fmt.Errorf("transaction must have at least two entries")
	}

	debits := make(map[string]int64)
	credits := make(map[string]int64)

	for _, e := range entries {
		if e.Amount.Amount < 0 {
			return fmt.Errorf("entry amount must not be negative for entry ID %s", e.EntryID)
		}
		switch e.DebitCredit {
		case domain.Debit:
			debits[e.Amount.CurrencyCode] += e.Amount.Amount
		case domain.Credit:
			credits[e.Amount.CurrencyCode] += e.Amount.Amount
		default:
			return fmt.Errorf("unknown debit/credit side %q for entry ID %s", e.DebitCredit, e.EntryID)
		}
	}

	for currency, debitSum := range debits {
		if creditSum := credits[currency]; debitSum != creditSum {
			return fmt.Errorf("entries do not balance for %s: debits %d, credits %d", currency, debitSum, creditSum)
		}
	}
	for currency, creditSum := range credits {
		if _, ok := debits[currency]; !ok && creditSum != 0 {
			return fmt.Errorf("entries do not balance for %s: debits 0, credits %d", currency, creditSum)
		}
	}

	return nil
}
