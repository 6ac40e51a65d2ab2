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

// accountHandler handles HTTP requests for the chart of accounts and ledger reads.
type accountHandler struct {
	accountService portssvc.AccountRegistrySvcFacade
	ledgerService  portssvc.LedgerQuerySvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(accountService portssvc.AccountRegistrySvcFacade, ledgerService portssvc.LedgerQuerySvcFacade) *accountHandler {
	return &accountHandler{
		accountService: accountService,
		ledgerService:  ledgerService,
	}
}

func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountRegistrySvcFacade, ledgerService portssvc.LedgerQuerySvcFacade) {
	h := newAccountHandler(accountService, ledgerService)
	rg.GET("/accounts", h.listAccounts)
	rg.GET("/accounts/:accountID/entries", h.listAccountEntries)
	rg.GET("/transactions/:transactionID", h.getTransaction)
	rg.GET("/payments/:paymentID", h.getPayment)
	rg.GET("/refunds/:refundID", h.getRefund)
	rg.GET("/payouts/:payoutID", h.getPayout)
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	out := make([]dto.AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = dto.ToAccountResponse(a)
	}
	c.JSON(http.StatusOK, gin.H{"accounts": out})
}

func (h *accountHandler) listAccountEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	params := dto.ListEntriesParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid entry listing parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	entries, nextToken, err := h.ledgerService.ListEntriesByAccount(c.Request.Context(), accountID, params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination token"})
			return
		}
		logger.Error("Failed to list account entries", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponseSlice(entries),
		NextToken: nextToken,
	})
}

func (h *accountHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	txn, entries, err := h.ledgerService.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Transaction not found", slog.String("transaction_id", transactionID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		logger.Error("Failed to get transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transaction": dto.ToTransactionResponse(*txn),
		"entries":     dto.ToEntryResponseSlice(entries),
	})
}

func (h *accountHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	payment, txns, err := h.ledgerService.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		logger.Error("Failed to get payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment"})
		return
	}

	transactions := make([]dto.TransactionResponse, len(txns))
	for i, t := range txns {
		transactions[i] = dto.ToTransactionResponse(t)
	}
	c.JSON(http.StatusOK, gin.H{
		"payment":      dto.ToPaymentResponse(*payment),
		"transactions": transactions,
	})
}

func (h *accountHandler) getRefund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	refundID := c.Param("refundID")

	refund, err := h.ledgerService.GetRefund(c.Request.Context(), refundID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Refund not found"})
			return
		}
		logger.Error("Failed to get refund", slog.String("error", err.Error()), slog.String("refund_id", refundID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve refund"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRefundResponse(*refund))
}

func (h *accountHandler) getPayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	payoutID := c.Param("payoutID")

	payout, err := h.ledgerService.GetPayout(c.Request.Context(), payoutID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payout not found"})
			return
		}
		logger.Error("Failed to get payout", slog.String("error", err.Error()), slog.String("payout_id", payoutID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payout"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPayoutResponse(*payout))
}
