package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/org_banking/internal/core/domain"
	portsrepo "github.com/SscSPs/org_banking/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/org_banking/internal/core/ports/services"
)

// accountService serves read-only account queries. Accounts are provisioned
// by the organization module.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountReader
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountAuthorizer adds the organization authorizer dependency
func WithAccountAuthorizer(authorizer portssvc.OrgAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.Authorizer = authorizer
	}
}

// WithAccountLogger sets the fallback logger
func WithAccountLogger(logger *slog.Logger) AccountServiceOption {
	return func(s *accountService) {
		s.Logger = logger
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountReader, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetOrgAccounts(ctx context.Context, organizationID string, userID string) ([]domain.Account, error) {
	if _, err := s.AuthorizeMember(ctx, organizationID, userID); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListActiveAccountsByOrganization(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organization accounts",
			slog.String("organization_id", organizationID))
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

func (s *accountService) GetAccountForMember(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	return loadAccountForMember(ctx, &s.BaseService, s.accountRepo, accountID, userID)
}

// loadAccountForMember fetches an account and checks that userID belongs to
// the owning organization.
func loadAccountForMember(ctx context.Context, base *BaseService, repo portsrepo.AccountReader, accountID string, userID string) (*domain.Account, error) {
	account, err := repo.FindAccountByID(ctx, accountID)
	if err != nil {
		base.LogDebug(ctx, "Account lookup failed",
			slog.String("account_id", accountID),
			slog.String("error", err.Error()))
		return nil, err
	}
	if _, err := base.AuthorizeMember(ctx, account.OrganizationID, userID); err != nil {
		return nil, err
	}
	return account, nil
}
