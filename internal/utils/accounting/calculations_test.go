package accounting_test

import (
	"testing"

	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/clubops/clubledger/internal/utils/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(amount int64, currency string, side domain.DebitCredit) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     "e-" + string(side),
		Amount:      domain.NewMoney(amount, currency),
		DebitCredit: side,
	}
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		side        domain.DebitCredit
		accountType domain.AccountType
		want        int64
	}{
		{"debit to asset is positive", domain.Debit, domain.Asset, 1000},
		{"credit to asset is negative", domain.Credit, domain.Asset, -1000},
		{"debit to expense is positive", domain.Debit, domain.Expense, 1000},
		{"debit to revenue is negative", domain.Debit, domain.Revenue, -1000},
		{"credit to revenue is positive", domain.Credit, domain.Revenue, 1000},
		{"credit to liability is positive", domain.Credit, domain.Liability, 1000},
		{"credit to equity is positive", domain.Credit, domain.Equity, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.SignedAmount(entry(1000, "EUR", tt.side), tt.accountType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignedAmount_UnknownAccountType(t *testing.T) {
	_, err := accounting.SignedAmount(entry(1000, "EUR", domain.Debit), domain.AccountType("GOODWILL"))
	assert.Error(t, err)
}

func TestValidateBalanced(t *testing.T) {
	t.Run("balanced pair", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.LedgerEntry{
			entry(10000, "EUR", domain.Debit),
			entry(10000, "EUR", domain.Credit),
		})
		assert.NoError(t, err)
	})

	t.Run("balanced with fee legs", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.LedgerEntry{
			entry(10000, "EUR", domain.Debit),
			entry(10000, "EUR", domain.Credit),
			entry(300, "EUR", domain.Debit),
			entry(300, "EUR", domain.Credit),
		})
		assert.NoError(t, err)
	})

	t.Run("zero amounts allowed", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.LedgerEntry{
			entry(0, "EUR", domain.Debit),
			entry(0, "EUR", domain.Credit),
		})
		assert.NoError(t, err)
	})

	t.Run("unbalanced", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.LedgerEntry{
			entry(10000, "EUR", domain.Debit),
			entry(9000, "EUR", domain.Credit),
		})
		assert.ErrorContains(t, err, "do not balance")
	})

	t.Run("balanced per currency independently", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.LedgerEntry{
			entry(10000, "EUR", domain.Debit),
			entry(10000, "EUR", domain.Credit),
			entry(700, "SEK", domain.Debit),
			entry(700, "SEK", domain.Credit),
		})
		assert.NoError(t, err)
	})

	t.Run("currencies do not offset each other", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.LedgerEntry{
			entry(10000, "EUR", domain.Debit),
			entry(10000, "SEK", domain.Credit),
		})
		assert.Error(t, err)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.LedgerEntry{
			entry(-100, "EUR", domain.Debit),
			entry(-100, "EUR", domain.Credit),
		})
		assert.ErrorContains(t, err, "must not be negative")
	})

	t.Run("single entry rejected", func(t *testing.T) {
		err := accounting.ValidateBalanced([]domain.LedgerEntry{
			entry(10000, "EUR", domain.Debit),
		})
		assert.ErrorContains(t, err, "at least two entries")
	})
}
