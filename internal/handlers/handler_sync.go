package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// syncHandler lets the external accounting sync workers report outcomes.
type syncHandler struct {
	syncService portssvc.SyncMetadataSvcFacade
}

// newSyncHandler creates a new syncHandler.
func newSyncHandler(syncService portssvc.SyncMetadataSvcFacade) *syncHandler {
	return &syncHandler{
		syncService: syncService,
	}
}

func registerSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncMetadataSvcFacade) {
	h := newSyncHandler(syncService)
	rg.PATCH("/sync/:recordType/:recordID", h.markSyncResult)
}

func (h *syncHandler) markSyncResult(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recordID := c.Param("recordID")

	recordType := portssvc.SyncRecordType(c.Param("recordType"))
	switch recordType {
	case portssvc.SyncRecordPayment, portssvc.SyncRecordRefund, portssvc.SyncRecordPayout:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown sync record type"})
		return
	}

	req := dto.MarkSyncRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for markSyncResult", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	now := time.Now()
	sync := domain.SyncFields{
		SyncStatus:           domain.SyncStatus(req.Status),
		ExternalAccountingID: req.ExternalAccountingID,
		SyncAttemptedAt:      &now,
		SyncError:            req.Error,
	}

	if err := h.syncService.MarkSyncResult(c.Request.Context(), recordType, recordID, sync); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Record not found for sync update", slog.String("record_id", recordID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to mark sync result", slog.String("error", err.Error()), slog.String("record_id", recordID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sync status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SyncStatusResponse{
		RecordType:  string(recordType),
		RecordID:    recordID,
		Status:      req.Status,
		AttemptedAt: &now,
	})
}
