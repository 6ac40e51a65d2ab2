package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/clubops/clubledger/internal/apperrors"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/dto"
	"github.com/clubops/clubledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler handles HTTP requests that post to the ledger.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
}

// newPostingHandler creates a new postingHandler.
func newPostingHandler(postingService portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{
		postingService: postingService,
	}
}

func registerPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newPostingHandler(postingService)
	rg.POST("/payments", h.processPayment)
	rg.POST("/refunds", h.processRefund)
	rg.POST("/payouts", h.recordPayout)
}

func (h *postingHandler) processPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.ProcessPaymentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for processPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.postingService.ProcessPayment(c.Request.Context(), req)
	if err != nil {
		respondPostingError(c, logger, err, "payment")
		return
	}

	logger.Info("Payment posted successfully",
		slog.String("payment_id", result.Payment.PaymentID),
		slog.String("transaction_id", result.Transaction.TransactionID))
	c.JSON(http.StatusCreated, dto.PaymentPostingResponse{
		PaymentID:   result.Payment.PaymentID,
		Status:      string(result.Payment.Status),
		Transaction: dto.ToTransactionResponse(result.Transaction),
		Entries:     dto.ToEntryResponseSlice(result.Entries),
	})
}

func (h *postingHandler) processRefund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.ProcessRefundRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for processRefund", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.postingService.ProcessRefund(c.Request.Context(), req)
	if err != nil {
		respondPostingError(c, logger, err, "refund")
		return
	}

	logger.Info("Refund posted successfully",
		slog.String("refund_id", result.Refund.RefundID),
		slog.String("payment_id", result.Refund.PaymentID))
	c.JSON(http.StatusCreated, dto.RefundPostingResponse{
		RefundID:    result.Refund.RefundID,
		PaymentID:   result.Refund.PaymentID,
		Status:      string(result.Refund.Status),
		Transaction: dto.ToTransactionResponse(result.Transaction),
		Entries:     dto.ToEntryResponseSlice(result.Entries),
	})
}

func (h *postingHandler) recordPayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.RecordPayoutRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for recordPayout", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.postingService.RecordPayout(c.Request.Context(), req)
	if err != nil {
		respondPostingError(c, logger, err, "payout")
		return
	}

	logger.Info("Payout posted successfully",
		slog.String("payout_id", result.Payout.PayoutID),
		slog.String("transaction_id", result.Transaction.TransactionID))
	c.JSON(http.StatusCreated, gin.H{
		"payoutID":    result.Payout.PayoutID,
		"status":      string(result.Payout.Status),
		"transaction": dto.ToTransactionResponse(result.Transaction),
		"entries":     dto.ToEntryResponseSlice(result.Entries),
	})
}

// respondPostingError maps service errors onto HTTP statuses.
func respondPostingError(c *gin.Context, logger *slog.Logger, err error, kind string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error posting "+kind, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate "+kind+" posting", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Record not found posting "+kind, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrImmutable):
		logger.Error("Immutability violation posting "+kind, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "Ledger records cannot be modified"})
	default:
		logger.Error("Failed to post "+kind, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post " + kind})
	}
}
