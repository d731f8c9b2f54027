package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/org_banking/internal/core/domain"
)

// TransactionFilter narrows a paginated transaction listing.
type TransactionFilter struct {
	AccountID string
	Status    *domain.TransactionStatus
	Limit     int
	Offset    int
}

// TransactionReader defines read operations for the transaction ledger.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction with its signatures.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns one page of an account's transactions, newest
	// first, and the total number matching the filter.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, int, error)

	// ListOpenTransactions returns PENDING and CLIENT_APPROVED transactions, oldest first.
	ListOpenTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error)

	// FindTransactionsInWindow returns the account's transactions whose
	// ReportDate lies in [from, to).
	FindTransactionsInWindow(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error)

	// FindTransactionsByReportID returns the transactions linked to a daily report.
	FindTransactionsByReportID(ctx context.Context, reportID string) ([]domain.Transaction, error)
}

// TransactionWriter defines the status-guarded write operations. Each one is a
// single atomic step; none of them touches an account balance.
type TransactionWriter interface {
	// SaveTransaction persists a newly initiated transaction and its first signature.
	SaveTransaction(ctx context.Context, transaction domain.Transaction) error

	// AppendSignature adds sig while holding the transaction row, recomputing
	// quorum against required. Returns the updated transaction.
	AppendSignature(ctx context.Context, transactionID string, sig domain.ClientSignature, required int) (*domain.Transaction, error)

	// RejectTransaction records a bank rejection if the transaction is still
	// CLIENT_APPROVED, else returns domain.ErrTransactionRaceLost.
	RejectTransaction(ctx context.Context, transactionID string, decision domain.BankDecision, now time.Time) (*domain.Transaction, error)

	// CancelTransaction moves an open transaction to CANCELLED, else returns
	// domain.ErrTransactionRaceLost.
	CancelTransaction(ctx context.Context, transactionID string, now time.Time) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// BalanceLedger is the only write path to Account.Balance.
type BalanceLedger interface {
	// ExecuteTransaction completes a CLIENT_APPROVED transaction and applies its
	// balance delta in one atomic unit. Losers of a status race get
	// domain.ErrTransactionRaceLost; a debit that would overdraw gets
	// domain.ErrInsufficientFunds and nothing is written.
	ExecuteTransaction(ctx context.Context, transactionID string, decision domain.BankDecision, now time.Time) (*domain.Transaction, *domain.Account, error)
}
