package handlers

import (
	"net/http"

	"github.com/clubops/clubledger/internal/core/domain"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// reconciliationHandler handles HTTP requests for reconciliation runs.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

// newReconciliationHandler creates a new reconciliationHandler.
func newReconciliationHandler(reconciliationService portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: reconciliationService,
	}
}

func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade, reconcileLimiter *limiter.Limiter) {
	h := newReconciliationHandler(reconciliationService)

	// Full runs scan the whole store; rate limited so an operator cannot
	// hammer the aggregate queries.
	group := rg.Group("/reconciliation", middleware.RateLimit(reconcileLimiter))
	group.POST("/run", h.runReconciliation)
	group.GET("/report", h.getReport)
}

func (h *reconciliationHandler) runReconciliation(c *gin.Context) {
	report := h.reconciliationService.RunFullReconciliation(c.Request.Context())

	status := http.StatusOK
	if report.OverallStatus != domain.CheckOK {
		// The run finished; the data has problems. 422 distinguishes this
		// from a failed request.
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, report)
}

func (h *reconciliationHandler) getReport(c *gin.Context) {
	report := h.reconciliationService.RunFullReconciliation(c.Request.Context())

	if c.Query("format") == "text" {
		c.String(http.StatusOK, h.reconciliationService.FormatReport(report))
		return
	}
	c.JSON(http.StatusOK, report)
}
