package services

import (
	"context"

	"github.com/SscSPs/org_banking/internal/core/domain"
	"github.com/SscSPs/org_banking/internal/dto"
)

// TransactionWriterSvc defines the client-side lifecycle operations.
type TransactionWriterSvc interface {
	// InitiateTransaction opens a transaction with the initiator as first signer.
	InitiateTransaction(ctx context.Context, initiatorID string, req dto.InitiateTransactionRequest) (*domain.Transaction, error)

	// SignTransaction adds a distinct member's signature to a PENDING transaction.
	SignTransaction(ctx context.Context, transactionID string, signerID string) (*domain.Transaction, error)

	// CancelTransaction withdraws an open transaction. Only its initiator may cancel.
	CancelTransaction(ctx context.Context, transactionID string, requesterID string) (*domain.Transaction, error)
}

// TransactionReaderSvc defines read operations over an account's ledger.
type TransactionReaderSvc interface {
	// GetAccountTransactions retrieves one page of an account's transactions, newest first.
	GetAccountTransactions(ctx context.Context, accountID string, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// GetPendingTransactions retrieves PENDING and CLIENT_APPROVED transactions, oldest first.
	GetPendingTransactions(ctx context.Context, accountID string, userID string) ([]domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionWriterSvc
	TransactionReaderSvc
}
