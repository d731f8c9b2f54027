package services

import (
	"context"

	"github.com/SscSPs/org_banking/internal/core/domain"
)

// ApprovalSvc is the bank-side gate a CLIENT_APPROVED transaction must pass.
type ApprovalSvc interface {
	// BankApproveTransaction approves (and executes) or rejects a transaction.
	BankApproveTransaction(ctx context.Context, transactionID string, officerID string, approve bool, note string) (*domain.Transaction, error)
}

// BalanceExecutorSvc applies an approved transaction to its account balance.
type BalanceExecutorSvc interface {
	// Execute completes txn and moves its amount in one atomic unit.
	Execute(ctx context.Context, txn *domain.Transaction, officerID string, level domain.BankApprovalLevel, note string) (*domain.Transaction, error)
}
