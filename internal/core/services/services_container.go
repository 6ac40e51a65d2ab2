package services

import (
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/clubops/clubledger/internal/platform/config"
	"github.com/clubops/clubledger/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, telemetry *utils.PosthogClientWrapper) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The account registry comes first since the posting engine depends on it.
	container.Accounts = NewAccountRegistryService(repos.AccountRepo, cfg.DefaultCurrency)
	container.Posting = NewPostingService(repos.LedgerRepo, repos.PaymentRepo, container.Accounts)
	container.Reconciliation = NewReconciliationService(repos.ReconciliationRepo, telemetry)
	container.Sync = NewSyncMetadataService(repos.PaymentRepo)
	container.Ledger = NewLedgerQueryService(repos.LedgerRepo, repos.PaymentRepo)

	return container
}
