package repositories

import (
	"context"

	"github.com/SscSPs/org_banking/internal/core/domain"
)

// AccountReader defines read operations for organization bank accounts.
// Accounts are provisioned by another module; the engine never writes them
// except through BalanceLedger.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListActiveAccountsByOrganization returns the organization's active accounts,
	// oldest first, with TransactionCount populated.
	ListActiveAccountsByOrganization(ctx context.Context, organizationID string) ([]domain.Account, error)

	// ListActiveAccounts returns every active account. Used by reconciliation.
	ListActiveAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
}
