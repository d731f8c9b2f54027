package services

import (
	"context"

	"github.com/SscSPs/org_banking/internal/core/domain"
)

// AccountReaderSvc defines read operations for organization bank accounts.
type AccountReaderSvc interface {
	// GetOrgAccounts lists an organization's active accounts for one of its members.
	GetOrgAccounts(ctx context.Context, organizationID string, userID string) ([]domain.Account, error)

	// GetAccountForMember returns the account if userID belongs to its organization.
	GetAccountForMember(ctx context.Context, accountID string, userID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
}
