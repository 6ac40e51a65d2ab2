package domain

import "time"

// DebitCredit indicates whether an entry posts to the debit or credit side.
type DebitCredit string

const (
	Debit  DebitCredit = "DEBIT"
	Credit DebitCredit = "CREDIT"
)

// RelatedEntityType tags an entry with the business domain it belongs to.
type RelatedEntityType string

const (
	EntityEvent          RelatedEntityType = "EVENT"
	EntityMembership     RelatedEntityType = "MEMBERSHIP"
	EntityBooking        RelatedEntityType = "BOOKING"
	EntityDonation       RelatedEntityType = "DONATION"
	EntityAdministration RelatedEntityType = "ADMINISTRATION"
)

// AllEntityTypes lists every entity category the posting engine recognises.
var AllEntityTypes = []RelatedEntityType{
	EntityEvent,
	EntityMembership,
	EntityBooking,
	EntityDonation,
	EntityAdministration,
}

// ValidRelatedEntityType reports whether t is one of the recognised
// entity categories.
func ValidRelatedEntityType(t RelatedEntityType) bool {
	for _, known := range AllEntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// LedgerEntry is a single signed posting against one account. Once committed
// an entry is permanently frozen: corrections are made exclusively by posting
// new reversing entries, never by mutating history.
type LedgerEntry struct {
	EntryID       string             `json:"entryID"`       // Primary Key (UUID)
	TransactionID string             `json:"transactionID"` // FK -> LedgerTransaction (Not Null)
	AccountID     string             `json:"accountID"`     // FK -> LedgerAccount (Not Null)
	Amount        Money              `json:"amount"`        // Magnitude >= 0; sign comes from DebitCredit
	DebitCredit   DebitCredit        `json:"debitCredit"`
	Description   string             `json:"description"`            // <=1000 chars
	EntityType    *RelatedEntityType `json:"entityType,omitempty"`   // Optional business tag
	EntityID      *string            `json:"entityID,omitempty"`     // Optional business reference
	PaymentID     *string            `json:"paymentID,omitempty"`    // Soft reference to Payment
	RefundID      *string            `json:"refundID,omitempty"`     // Soft reference to Refund
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
}
