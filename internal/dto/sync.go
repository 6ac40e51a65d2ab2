package dto

import "time"

// MarkSyncRequest records the outcome of one external accounting sync attempt.
type MarkSyncRequest struct {
	Status               string  `json:"status" binding:"required,oneof=PENDING SYNCED FAILED"`
	ExternalAccountingID *string `json:"externalAccountingID,omitempty"`
	Error                *string `json:"error,omitempty"`
}

// SyncStatusResponse echoes the stored sync metadata after an update.
type SyncStatusResponse struct {
	RecordType  string     `json:"recordType"`
	RecordID    string     `json:"recordID"`
	Status      string     `json:"status"`
	AttemptedAt *time.Time `json:"attemptedAt,omitempty"`
}
