package pgsql

import (
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)
	reconciliationRepo := newPgxReconciliationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:        accountRepo,
		LedgerRepo:         ledgerRepo,
		PaymentRepo:        paymentRepo,
		ReconciliationRepo: reconciliationRepo,
	}
}
