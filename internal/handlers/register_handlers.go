package handlers

import (
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	reconcileLimiter *limiter.Limiter,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1")

	registerPostingRoutes(v1, services.Posting)
	registerAccountRoutes(v1, services.Accounts, services.Ledger)
	registerReconciliationRoutes(v1, services.Reconciliation, reconcileLimiter)
	registerSyncRoutes(v1, services.Sync)
}
