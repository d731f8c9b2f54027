package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/org_banking/internal/core/domain"
	portsrepo "github.com/SscSPs/org_banking/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/org_banking/internal/core/ports/services"
	"github.com/SscSPs/org_banking/internal/dto"
	"github.com/SscSPs/org_banking/internal/platform/metrics"
	"github.com/SscSPs/org_banking/internal/utils"
	"github.com/SscSPs/org_banking/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	defaultTransactionPageSize = 20
	maxTransactionPageSize     = 50
)

// transactionService implements initiation, signing, cancellation and the
// ledger queries.
type transactionService struct {
	BaseService
	accountRepo     portsrepo.AccountReader
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionAuthorizer adds the organization authorizer dependency
func WithTransactionAuthorizer(authorizer portssvc.OrgAuthorizerSvc) TransactionServiceOption {
	return func(s *transactionService) {
		s.Authorizer = authorizer
	}
}

// WithTransactionLogger sets the fallback logger
func WithTransactionLogger(logger *slog.Logger) TransactionServiceOption {
	return func(s *transactionService) {
		s.Logger = logger
	}
}

// WithTransactionMetrics records lifecycle counters
func WithTransactionMetrics(recorder *metrics.Recorder) TransactionServiceOption {
	return func(s *transactionService) {
		s.Metrics = recorder
	}
}

// WithTransactionClock overrides time.Now
func WithTransactionClock(clock Clock) TransactionServiceOption {
	return func(s *transactionService) {
		s.Now = clock
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(accountRepo portsrepo.AccountReader, transactionRepo portsrepo.TransactionRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) InitiateTransaction(ctx context.Context, initiatorID string, req dto.InitiateTransactionRequest) (*domain.Transaction, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		s.LogDebug(ctx, "Account lookup failed for initiation",
			slog.String("account_id", req.AccountID),
			slog.String("error", err.Error()))
		return nil, err
	}
	if !account.IsActive {
		return nil, domain.ErrAccountInactive
	}

	role, err := s.AuthorizeMember(ctx, account.OrganizationID, initiatorID)
	if err != nil {
		return nil, err
	}
	canManage, err := s.Authorizer.CanManageTreasury(ctx, account.OrganizationID, role)
	if err != nil {
		return nil, err
	}
	if !canManage {
		return nil, domain.ErrNoTreasuryPermission
	}

	draft := req.ToDraft()
	if err := account.CheckCanInitiate(draft); err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			s.LogInfo(ctx, "Initiation rejected for insufficient funds",
				slog.String("account_id", account.AccountID),
				slog.String("amount", draft.Amount.String()),
				slog.String("balance", account.Balance.String()))
		}
		return nil, err
	}

	now := s.CurrentTime()
	txID := uuid.NewString()
	first := domain.ClientSignature{
		UserID:   initiatorID,
		SignedAt: now,
		Token:    utils.SignatureToken(txID, initiatorID, now),
	}
	txn := domain.NewTransaction(txID, *account, initiatorID, draft, first, now)

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txID),
			slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.Metrics.TransactionInitiated(string(txn.Type))
	s.Metrics.TransactionTransitioned(string(txn.Status))
	s.LogInfo(ctx, "Transaction initiated",
		slog.String("transaction_id", txID),
		slog.String("account_id", account.AccountID),
		slog.String("type", string(txn.Type)),
		slog.String("status", string(txn.Status)))
	return &txn, nil
}

func (s *transactionService) SignTransaction(ctx context.Context, transactionID string, signerID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.StatusPending {
		return nil, domain.ErrNotPending
	}

	account, err := s.accountRepo.FindAccountByID(ctx, txn.AccountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load account of transaction",
			slog.String("transaction_id", transactionID),
			slog.String("account_id", txn.AccountID))
		return nil, err
	}
	if _, err := s.AuthorizeMember(ctx, account.OrganizationID, signerID); err != nil {
		return nil, err
	}
	if err := txn.CheckCanSign(signerID); err != nil {
		return nil, err
	}

	now := s.CurrentTime()
	sig := domain.ClientSignature{
		UserID:   signerID,
		SignedAt: now,
		Token:    utils.SignatureToken(transactionID, signerID, now),
	}
	updated, err := s.transactionRepo.AppendSignature(ctx, transactionID, sig, account.RequiredSignatures())
	if err != nil {
		if errors.Is(err, domain.ErrNotPending) || errors.Is(err, domain.ErrAlreadySigned) {
			s.LogInfo(ctx, "Signature lost a concurrent update",
				slog.String("transaction_id", transactionID),
				slog.String("signer_id", signerID),
				slog.String("error", err.Error()))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to append signature",
			slog.String("transaction_id", transactionID),
			slog.String("signer_id", signerID))
		return nil, err
	}

	if updated.Status != txn.Status {
		s.Metrics.TransactionTransitioned(string(updated.Status))
	}
	s.LogInfo(ctx, "Transaction signed",
		slog.String("transaction_id", transactionID),
		slog.String("signer_id", signerID),
		slog.Int("signatures", len(updated.ClientSignatures)),
		slog.Int("required", account.RequiredSignatures()),
		slog.String("status", string(updated.Status)))
	return updated, nil
}

func (s *transactionService) CancelTransaction(ctx context.Context, transactionID string, requesterID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := txn.CheckCanCancel(requesterID); err != nil {
		return nil, err
	}

	cancelled, err := s.transactionRepo.CancelTransaction(ctx, transactionID, s.CurrentTime())
	if err != nil {
		if errors.Is(err, domain.ErrTransactionRaceLost) {
			s.LogInfo(ctx, "Cancellation lost race",
				slog.String("transaction_id", transactionID))
		} else {
			s.LogError(ctx, err, "Failed to cancel transaction",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	s.Metrics.TransactionTransitioned(string(cancelled.Status))
	s.LogInfo(ctx, "Transaction cancelled",
		slog.String("transaction_id", transactionID),
		slog.String("requester_id", requesterID))
	return cancelled, nil
}

func (s *transactionService) GetAccountTransactions(ctx context.Context, accountID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := loadAccountForMember(ctx, &s.BaseService, s.accountRepo, accountID, userID); err != nil {
		return nil, err
	}

	window := pagination.Clamp(params.Page, params.Limit, defaultTransactionPageSize, maxTransactionPageSize)
	filter := portsrepo.TransactionFilter{
		AccountID: accountID,
		Limit:     window.Limit,
		Offset:    window.Offset,
	}
	if params.Status != "" {
		status := domain.TransactionStatus(params.Status)
		if !status.IsValid() {
			return nil, domain.ErrInvalidStatusFilter
		}
		filter.Status = &status
	}

	txns, total, err := s.transactionRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions",
			slog.String("account_id", accountID))
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		Pagination:   dto.ToPaginationResponse(window, total),
	}, nil
}

func (s *transactionService) GetPendingTransactions(ctx context.Context, accountID string, userID string) ([]domain.Transaction, error) {
	if _, err := loadAccountForMember(ctx, &s.BaseService, s.accountRepo, accountID, userID); err != nil {
		return nil, err
	}

	txns, err := s.transactionRepo.ListOpenTransactions(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending transactions",
			slog.String("account_id", accountID))
		return nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}
