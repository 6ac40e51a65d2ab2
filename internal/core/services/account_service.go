package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clubops/clubledger/internal/apperrors"
	"github.com/clubops/clubledger/internal/core/domain"
	portsrepo "github.com/clubops/clubledger/internal/core/ports/repositories"
	portssvc "github.com/clubops/clubledger/internal/core/ports/services"
	"github.com/google/uuid"
)

// Fixed account names the posting engine depends on. Seeded by
// EnsureBasicAccounts and looked up by exact name.
const (
	AccountProcessorClearing = "Processor Clearing"
	AccountProcessorFees     = "Processor Fees"
	AccountSettlement        = "Settlement Account"
	AccountGeneralRevenue    = "General Revenue"
)

// revenueAccountNames maps each entity category to its revenue account.
var revenueAccountNames = map[domain.RelatedEntityType]string{
	domain.EntityEvent:          "Event Revenue",
	domain.EntityMembership:     "Membership Revenue",
	domain.EntityBooking:        "Booking Revenue",
	domain.EntityDonation:       "Donation Revenue",
	domain.EntityAdministration: "Administration Revenue",
}

// RevenueAccountNameFor returns the revenue account name for an entity
// category. Untagged payments post to the general revenue account.
func RevenueAccountNameFor(entityType *domain.RelatedEntityType) string {
	if entityType == nil {
		return AccountGeneralRevenue
	}
	if name, ok := revenueAccountNames[*entityType]; ok {
		return name
	}
	return AccountGeneralRevenue
}

// accountRegistryService implements the AccountRegistrySvcFacade interface
type accountRegistryService struct {
	BaseService
	accountRepo     portsrepo.AccountRepositoryFacade
	defaultCurrency string
}

// NewAccountRegistryService creates the chart-of-accounts registry service.
func NewAccountRegistryService(repo portsrepo.AccountRepositoryFacade, defaultCurrency string) portssvc.AccountRegistrySvcFacade {
	return &accountRegistryService{
		accountRepo:     repo,
		defaultCurrency: defaultCurrency,
	}
}

// Ensure accountRegistryService implements the AccountRegistrySvcFacade interface
var _ portssvc.AccountRegistrySvcFacade = (*accountRegistryService)(nil)

type seedAccount struct {
	name        string
	accountType domain.AccountType
	description string
}

func basicAccounts() []seedAccount {
	seeds := []seedAccount{
		{AccountProcessorClearing, domain.Asset, "Funds held by the payment processor before settlement"},
		{AccountSettlement, domain.Asset, "Club bank account receiving processor payouts"},
		{AccountProcessorFees, domain.Expense, "Fees charged by the payment processor"},
		{AccountGeneralRevenue, domain.Revenue, "Revenue not attributed to an entity category"},
	}
	for _, entityType := range domain.AllEntityTypes {
		seeds = append(seeds, seedAccount{
			name:        revenueAccountNames[entityType],
			accountType: domain.Revenue,
			description: fmt.Sprintf("Revenue from %s payments", entityType),
		})
	}
	return seeds
}

// EnsureBasicAccounts idempotently seeds the fixed chart of accounts. Existing
// accounts are left untouched; a concurrent seeder losing the unique-index
// race is treated as success.
func (s *accountRegistryService) EnsureBasicAccounts(ctx context.Context) error {
	now := time.Now()
	created := 0

	for _, seed := range basicAccounts() {
		_, err := s.accountRepo.FindAccountByName(ctx, seed.name)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up account during seeding", slog.String("name", seed.name))
			return fmt.Errorf("failed to look up account %q: %w", seed.name, err)
		}

		account := domain.LedgerAccount{
			AccountID:     uuid.NewString(),
			Name:          seed.name,
			AccountType:   seed.accountType,
			NormalBalance: domain.NormalBalanceFor(seed.accountType),
			CurrencyCode:  s.defaultCurrency,
			Description:   seed.description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     domain.SystemUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: domain.SystemUserID,
			},
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				// Another instance seeded it between our lookup and insert.
				continue
			}
			s.LogError(ctx, err, "Failed to seed account", slog.String("name", seed.name))
			return fmt.Errorf("failed to seed account %q: %w", seed.name, err)
		}
		created++
	}

	if created > 0 {
		s.LogInfo(ctx, "Seeded basic ledger accounts", slog.Int("created", created))
	}
	return nil
}

// GetAccountByName performs an exact name lookup.
func (s *accountRegistryService) GetAccountByName(ctx context.Context, name string) (*domain.LedgerAccount, error) {
	account, err := s.accountRepo.FindAccountByName(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %q not found", name))
		}
		s.LogError(ctx, err, "Failed to find account by name", slog.String("name", name))
		return nil, err
	}
	return account, nil
}

// ListAccounts returns the full chart of accounts.
func (s *accountRegistryService) ListAccounts(ctx context.Context) ([]domain.LedgerAccount, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}
