package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalanceFor returns the side on which an account of the given type
// normally carries its balance.
func NormalBalanceFor(t AccountType) DebitCredit {
	switch t {
	case Asset, Expense:
		return Debit
	default:
		return Credit
	}
}

// LedgerAccount represents one account in the chart of accounts. Accounts are
// seeded once at bootstrap and never deleted.
type LedgerAccount struct {
	AccountID     string      `json:"accountID"`     // Primary Key (UUID)
	Name          string      `json:"name"`          // Unique per account type, 1-255 chars
	AccountType   AccountType `json:"accountType"`   // ASSET, LIABILITY, etc.
	NormalBalance DebitCredit `json:"normalBalance"` // Declared normal balance side
	CurrencyCode  string      `json:"currencyCode"`
	Description   string      `json:"description"` // Optional, <=1000 chars
	AuditFields
}
