package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/org_banking/internal/apperrors"
	"github.com/SscSPs/org_banking/internal/core/domain"
	portssvc "github.com/SscSPs/org_banking/internal/core/ports/services"
	"github.com/SscSPs/org_banking/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ApprovalServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	accounts *MockAccountRepository
	txns     *MockTransactionRepository
	executor *MockExecutor
	officers *MockOfficerLookup
	service  portssvc.ApprovalSvc
	account  *domain.Account
}

func (s *ApprovalServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.accounts = new(MockAccountRepository)
	s.txns = new(MockTransactionRepository)
	s.executor = new(MockExecutor)
	s.officers = new(MockOfficerLookup)
	s.service = services.NewApprovalService(s.accounts, s.txns, s.executor,
		services.WithOfficerSeniority(s.officers, true),
		services.WithApprovalClock(fixedClock),
	)
	s.account = &domain.Account{
		AccountID:         "acc-1",
		OrganizationID:    "org-1",
		Balance:           decimal.NewFromInt(5000),
		IsActive:          true,
		BankApprovalLevel: domain.LevelSeniorManager,
	}
}

func (s *ApprovalServiceTestSuite) TearDownTest() {
	s.accounts.AssertExpectations(s.T())
	s.txns.AssertExpectations(s.T())
	s.executor.AssertExpectations(s.T())
	s.officers.AssertExpectations(s.T())
}

func (s *ApprovalServiceTestSuite) approvedTxn() *domain.Transaction {
	return &domain.Transaction{
		TransactionID:  "tx-1",
		AccountID:      "acc-1",
		Type:           domain.Outgoing,
		Amount:         decimal.NewFromInt(100),
		InitiatorID:    "alice",
		ClientApproved: true,
		Status:         domain.StatusClientApproved,
	}
}

func (s *ApprovalServiceTestSuite) TestNotFound() {
	s.txns.On("FindTransactionByID", s.ctx, "tx-x").Return(nil, domain.ErrTransactionNotFound).Once()

	_, err := s.service.BankApproveTransaction(s.ctx, "tx-x", "officer", true, "")

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ApprovalServiceTestSuite) TestRequiresClientApproval() {
	for _, status := range []domain.TransactionStatus{domain.StatusPending, domain.StatusCompleted, domain.StatusRejected, domain.StatusCancelled} {
		txn := s.approvedTxn()
		txn.Status = status
		s.txns.On("FindTransactionByID", s.ctx, "tx-1").Return(txn, nil).Once()

		_, err := s.service.BankApproveTransaction(s.ctx, "tx-1", "officer", true, "")

		s.ErrorIs(err, domain.ErrNotClientApproved, string(status))
		s.ErrorIs(err, apperrors.ErrValidation)
	}
	s.accounts.AssertNotCalled(s.T(), "FindAccountByID", mock.Anything, mock.Anything)
	s.executor.AssertNotCalled(s.T(), "Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestUnknownOfficerForbidden() {
	s.txns.On("FindTransactionByID", s.ctx, "tx-1").Return(s.approvedTxn(), nil).Once()
	s.accounts.On("FindAccountByID", s.ctx, "acc-1").Return(s.account, nil).Once()
	s.officers.On("FindOfficerLevel", s.ctx, "nobody").Return(domain.BankApprovalLevel(""), apperrors.ErrNotFound).Once()

	_, err := s.service.BankApproveTransaction(s.ctx, "tx-1", "nobody", true, "")

	s.ErrorIs(err, domain.ErrOfficerNotRecognized)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *ApprovalServiceTestSuite) TestJuniorOfficerForbiddenForBothDecisions() {
	for _, approve := range []bool{true, false} {
		s.txns.On("FindTransactionByID", s.ctx, "tx-1").Return(s.approvedTxn(), nil).Once()
		s.accounts.On("FindAccountByID", s.ctx, "acc-1").Return(s.account, nil).Once()
		s.officers.On("FindOfficerLevel", s.ctx, "junior").Return(domain.LevelManager, nil).Once()

		_, err := s.service.BankApproveTransaction(s.ctx, "tx-1", "junior", approve, "")

		s.ErrorIs(err, domain.ErrOfficerLevelTooLow)
	}
	s.txns.AssertNotCalled(s.T(), "RejectTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestApproveDelegatesToExecutor() {
	txn := s.approvedTxn()
	s.txns.On("FindTransactionByID", s.ctx, "tx-1").Return(txn, nil).Once()
	s.accounts.On("FindAccountByID", s.ctx, "acc-1").Return(s.account, nil).Once()
	s.officers.On("FindOfficerLevel", s.ctx, "chair").Return(domain.LevelChairman, nil).Once()

	completed := s.approvedTxn()
	completed.RecordDecision(domain.BankDecision{OfficerID: "chair", Level: domain.LevelSeniorManager, Approve: true}, fixedNow)
	s.executor.On("Execute", s.ctx, txn, "chair", domain.LevelSeniorManager, "ok").Return(completed, nil).Once()

	result, err := s.service.BankApproveTransaction(s.ctx, "tx-1", "chair", true, "ok")

	s.Require().NoError(err)
	s.Equal(domain.StatusCompleted, result.Status)
}

func (s *ApprovalServiceTestSuite) TestRejectRecordsDecision() {
	s.txns.On("FindTransactionByID", s.ctx, "tx-1").Return(s.approvedTxn(), nil).Once()
	s.accounts.On("FindAccountByID", s.ctx, "acc-1").Return(s.account, nil).Once()
	s.officers.On("FindOfficerLevel", s.ctx, "senior").Return(domain.LevelSeniorManager, nil).Once()

	decision := domain.BankDecision{OfficerID: "senior", Level: domain.LevelSeniorManager, Approve: false}
	rejected := s.approvedTxn()
	rejected.RecordDecision(decision, fixedNow)
	s.txns.On("RejectTransaction", s.ctx, "tx-1", decision, fixedNow).Return(rejected, nil).Once()

	result, err := s.service.BankApproveTransaction(s.ctx, "tx-1", "senior", false, "")

	s.Require().NoError(err)
	s.Equal(domain.StatusRejected, result.Status)
	s.Require().NotNil(result.BankApprovalNote)
	s.Equal(domain.DefaultRejectionNote, *result.BankApprovalNote)
	s.executor.AssertNotCalled(s.T(), "Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ApprovalServiceTestSuite) TestRejectLostRaceIsConflict() {
	s.txns.On("FindTransactionByID", s.ctx, "tx-1").Return(s.approvedTxn(), nil).Once()
	s.accounts.On("FindAccountByID", s.ctx, "acc-1").Return(s.account, nil).Once()
	s.officers.On("FindOfficerLevel", s.ctx, "senior").Return(domain.LevelSeniorManager, nil).Once()
	s.txns.On("RejectTransaction", s.ctx, "tx-1", mock.AnythingOfType("domain.BankDecision"), fixedNow).
		Return(nil, domain.ErrTransactionRaceLost).Once()

	_, err := s.service.BankApproveTransaction(s.ctx, "tx-1", "senior", false, "no")

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *ApprovalServiceTestSuite) TestSeniorityNotEnforced() {
	s.service = services.NewApprovalService(s.accounts, s.txns, s.executor,
		services.WithOfficerSeniority(s.officers, false),
		services.WithApprovalClock(fixedClock),
	)
	txn := s.approvedTxn()
	s.txns.On("FindTransactionByID", s.ctx, "tx-1").Return(txn, nil).Once()
	s.accounts.On("FindAccountByID", s.ctx, "acc-1").Return(s.account, nil).Once()
	s.executor.On("Execute", s.ctx, txn, "anyone", domain.LevelSeniorManager, "").Return(txn, nil).Once()

	_, err := s.service.BankApproveTransaction(s.ctx, "tx-1", "anyone", true, "")

	s.Require().NoError(err)
	s.officers.AssertNotCalled(s.T(), "FindOfficerLevel", mock.Anything, mock.Anything)
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
