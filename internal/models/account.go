package models

// LedgerAccount is the DB row shape for the ledger_accounts table.
// Uniqueness is enforced on (account_type, name).
type LedgerAccount struct {
	AccountID     string `db:"account_id"`
	Name          string `db:"name"`
	AccountType   string `db:"account_type"`
	NormalBalance string `db:"normal_balance"`
	CurrencyCode  string `db:"currency_code"`
	Description   string `db:"description"`
	AuditFields
}
