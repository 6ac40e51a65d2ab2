package services

import (
	"context"

	"github.com/clubops/clubledger/internal/core/domain"
)

// SyncRecordType names a record kind carrying sync metadata.
type SyncRecordType string

const (
	SyncRecordPayment SyncRecordType = "payment"
	SyncRecordRefund  SyncRecordType = "refund"
	SyncRecordPayout  SyncRecordType = "payout"
)

// SyncMetadataSvcFacade lets the external-accounting-sync collaborator record
// sync outcomes. Metadata only; ledger rows are never touched.
type SyncMetadataSvcFacade interface {
	MarkSyncResult(ctx context.Context, recordType SyncRecordType, recordID string, sync domain.SyncFields) error
}
