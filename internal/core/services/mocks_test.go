package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/org_banking/internal/core/domain"
	portsrepo "github.com/SscSPs/org_banking/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountReader interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListActiveAccountsByOrganization(ctx context.Context, organizationID string) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Int(1), args.Error(2)
}

func (m *MockTransactionRepository) ListOpenTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsInWindow(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByReportID(ctx context.Context, reportID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, transaction domain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) AppendSignature(ctx context.Context, transactionID string, sig domain.ClientSignature, required int) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, sig, required)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) RejectTransaction(ctx context.Context, transactionID string, decision domain.BankDecision, now time.Time) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, decision, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CancelTransaction(ctx context.Context, transactionID string, now time.Time) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// MockAuthorizer is a mock type for the OrgAuthorizerSvc interface
type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) AuthorizeMember(ctx context.Context, organizationID string, userID string) (domain.MemberRole, error) {
	args := m.Called(ctx, organizationID, userID)
	return args.Get(0).(domain.MemberRole), args.Error(1)
}

func (m *MockAuthorizer) CanManageTreasury(ctx context.Context, organizationID string, role domain.MemberRole) (bool, error) {
	args := m.Called(ctx, organizationID, role)
	return args.Bool(0), args.Error(1)
}

// MockExecutor is a mock type for the BalanceExecutorSvc interface
type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Execute(ctx context.Context, txn *domain.Transaction, officerID string, level domain.BankApprovalLevel, note string) (*domain.Transaction, error) {
	args := m.Called(ctx, txn, officerID, level, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// MockOfficerLookup is a mock type for the OfficerLookup interface
type MockOfficerLookup struct {
	mock.Mock
}

func (m *MockOfficerLookup) FindOfficerLevel(ctx context.Context, officerID string) (domain.BankApprovalLevel, error) {
	args := m.Called(ctx, officerID)
	return args.Get(0).(domain.BankApprovalLevel), args.Error(1)
}
