package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/org_banking/internal/apperrors"
	"github.com/SscSPs/org_banking/internal/core/domain"
	portsrepo "github.com/SscSPs/org_banking/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/org_banking/internal/core/ports/services"
	"github.com/SscSPs/org_banking/internal/platform/metrics"
)

// approvalService is the bank-side gate. Approvals are handed to the
// balance executor; rejections are a single status-guarded write.
type approvalService struct {
	BaseService
	accountRepo      portsrepo.AccountReader
	transactionRepo  portsrepo.TransactionRepositoryFacade
	executor         portssvc.BalanceExecutorSvc
	officers         portsrepo.OfficerLookup
	enforceSeniority bool
}

// ApprovalServiceOption is a functional option for configuring the approval service
type ApprovalServiceOption func(*approvalService)

// WithOfficerSeniority makes the gate rank the officer against the account's
// approval level. A nil lookup disables the check.
func WithOfficerSeniority(officers portsrepo.OfficerLookup, enforce bool) ApprovalServiceOption {
	return func(s *approvalService) {
		s.officers = officers
		s.enforceSeniority = enforce && officers != nil
	}
}

// WithApprovalLogger sets the fallback logger
func WithApprovalLogger(logger *slog.Logger) ApprovalServiceOption {
	return func(s *approvalService) {
		s.Logger = logger
	}
}

// WithApprovalMetrics records lifecycle counters
func WithApprovalMetrics(recorder *metrics.Recorder) ApprovalServiceOption {
	return func(s *approvalService) {
		s.Metrics = recorder
	}
}

// WithApprovalClock overrides time.Now
func WithApprovalClock(clock Clock) ApprovalServiceOption {
	return func(s *approvalService) {
		s.Now = clock
	}
}

// NewApprovalService creates the approval gate.
func NewApprovalService(accountRepo portsrepo.AccountReader, transactionRepo portsrepo.TransactionRepositoryFacade, executor portssvc.BalanceExecutorSvc, options ...ApprovalServiceOption) portssvc.ApprovalSvc {
	svc := &approvalService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		executor:        executor,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ApprovalSvc = (*approvalService)(nil)

func (s *approvalService) BankApproveTransaction(ctx context.Context, transactionID string, officerID string, approve bool, note string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := txn.CheckCanBankReview(); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, txn.AccountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account of transaction",
			slog.String("transaction_id", transactionID),
			slog.String("account_id", txn.AccountID))
		return nil, err
	}

	if err := s.checkSeniority(ctx, officerID, account.BankApprovalLevel); err != nil {
		return nil, err
	}

	if approve {
		return s.executor.Execute(ctx, txn, officerID, account.BankApprovalLevel, note)
	}

	decision := domain.BankDecision{
		OfficerID: officerID,
		Level:     account.BankApprovalLevel,
		Approve:   false,
		Note:      note,
	}
	rejected, err := s.transactionRepo.RejectTransaction(ctx, transactionID, decision, s.CurrentTime())
	if err != nil {
		if errors.Is(err, domain.ErrTransactionRaceLost) {
			s.LogInfo(ctx, "Rejection lost race",
				slog.String("transaction_id", transactionID),
				slog.String("officer_id", officerID))
		} else {
			s.LogError(ctx, err, "Failed to reject transaction",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	s.Metrics.TransactionTransitioned(string(rejected.Status))
	s.LogInfo(ctx, "Transaction rejected by bank",
		slog.String("transaction_id", transactionID),
		slog.String("officer_id", officerID))
	return rejected, nil
}

func (s *approvalService) checkSeniority(ctx context.Context, officerID string, required domain.BankApprovalLevel) error {
	if !s.enforceSeniority {
		return nil
	}
	level, err := s.officers.FindOfficerLevel(ctx, officerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.ErrOfficerNotRecognized
		}
		s.LogError(ctx, err, "Failed to look up officer level",
			slog.String("officer_id", officerID))
		return err
	}
	if !level.Satisfies(required) {
		s.LogInfo(ctx, "Officer below required approval level",
			slog.String("officer_id", officerID),
			slog.String("officer_level", string(level)),
			slog.String("required_level", string(required)))
		return domain.ErrOfficerLevelTooLow
	}
	return nil
}

// balanceExecutor is the only service that moves money.
type balanceExecutor struct {
	BaseService
	ledger portsrepo.BalanceLedger
}

// NewBalanceExecutor creates the executor over the store's balance ledger.
func NewBalanceExecutor(ledger portsrepo.BalanceLedger, logger *slog.Logger, recorder *metrics.Recorder, clock Clock) portssvc.BalanceExecutorSvc {
	return &balanceExecutor{
		BaseService: BaseService{Logger: logger, Metrics: recorder, Now: clock},
		ledger:      ledger,
	}
}

var _ portssvc.BalanceExecutorSvc = (*balanceExecutor)(nil)

func (e *balanceExecutor) Execute(ctx context.Context, txn *domain.Transaction, officerID string, level domain.BankApprovalLevel, note string) (*domain.Transaction, error) {
	decision := domain.BankDecision{
		OfficerID: officerID,
		Level:     level,
		Approve:   true,
		Note:      note,
	}
	completed, account, err := e.ledger.ExecuteTransaction(ctx, txn.TransactionID, decision, e.CurrentTime())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionRaceLost):
			e.LogInfo(ctx, "Execution lost race",
				slog.String("transaction_id", txn.TransactionID),
				slog.String("officer_id", officerID))
		case errors.Is(err, domain.ErrInsufficientFunds):
			e.LogInfo(ctx, "Execution refused for insufficient funds",
				slog.String("transaction_id", txn.TransactionID),
				slog.String("amount", txn.Amount.String()))
		default:
			e.LogError(ctx, err, "Failed to execute transaction",
				slog.String("transaction_id", txn.TransactionID))
		}
		return nil, err
	}

	e.Metrics.BalanceExecuted(string(completed.Type))
	e.Metrics.TransactionTransitioned(string(completed.Status))
	e.LogInfo(ctx, "Transaction executed",
		slog.String("transaction_id", completed.TransactionID),
		slog.String("account_id", account.AccountID),
		slog.String("type", string(completed.Type)),
		slog.String("amount", completed.Amount.String()),
		slog.String("balance", account.Balance.String()))
	return completed, nil
}
