package dto

import (
	"github.com/clubops/clubledger/internal/core/domain"
)

// AccountResponse defines the data returned for a ledger account.
type AccountResponse struct {
	AccountID     string `json:"accountID"`
	Name          string `json:"name"`
	AccountType   string `json:"accountType"`
	NormalBalance string `json:"normalBalance"`
	CurrencyCode  string `json:"currencyCode"`
	Description   string `json:"description,omitempty"`
}

// ToAccountResponse converts a domain.LedgerAccount to its response DTO.
func ToAccountResponse(a domain.LedgerAccount) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		Name:          a.Name,
		AccountType:   string(a.AccountType),
		NormalBalance: string(a.NormalBalance),
		CurrencyCode:  a.CurrencyCode,
		Description:   a.Description,
	}
}

// ListEntriesParams holds cursor pagination parameters for entry listing.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is a page of entries plus the token for the next page.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
