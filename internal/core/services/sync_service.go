package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
)

// syncMetadataService implements the SyncMetadataSvcFacade interface. The
// external accounting sync workers call back through this to record outcomes;
// it never touches ledger rows.
type syncMetadataService struct {
	BaseService
	syncRepo portsrepo.SyncMetadataWriter
}

// NewSyncMetadataService creates the sync metadata service.
func NewSyncMetadataService(syncRepo portsrepo.SyncMetadataWriter) portssvc.SyncMetadataSvcFacade {
	return &syncMetadataService{syncRepo: syncRepo}
}

// Ensure syncMetadataService implements the SyncMetadataSvcFacade interface
var _ portssvc.SyncMetadataSvcFacade = (*syncMetadataService)(nil)

// MarkSyncResult records a sync attempt outcome on the named record.
func (s *syncMetadataService) MarkSyncResult(ctx context.Context, recordType portssvc.SyncRecordType, recordID string, sync domain.SyncFields) error {
	switch sync.SyncStatus {
	case domain.SyncSynced, domain.SyncFailed, domain.SyncPending:
	default:
		return fmt.Errorf("unknown sync status %q: %w", sync.SyncStatus, apperrors.ErrValidation)
	}

	now := time.Now()
	var err error
	switch recordType {
	case portssvc.SyncRecordPayment:
		err = s.syncRepo.UpdatePaymentSyncStatus(ctx, recordID, sync, now)
	case portssvc.SyncRecordRefund:
		err = s.syncRepo.UpdateRefundSyncStatus(ctx, recordID, sync, now)
	case portssvc.SyncRecordPayout:
		err = s.syncRepo.UpdatePayoutSyncStatus(ctx, recordID, sync, now)
	default:
		return fmt.Errorf("unknown sync record type %q: %w", recordType, apperrors.ErrValidation)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to mark sync result",
			slog.String("record_type", string(recordType)),
			slog.String("record_id", recordID))
		return err
	}

	s.LogInfo(ctx, "Marked sync result",
		slog.String("record_type", string(recordType)),
		slog.String("record_id", recordID),
		slog.String("sync_status", string(sync.SyncStatus)))
	return nil
}
