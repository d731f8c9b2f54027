package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/org_banking/internal/core/domain"
	portsrepo "github.com/SscSPs/org_banking/internal/core/ports/repositories"
	"github.com/SscSPs/org_banking/internal/utils/accounting"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxBalanceLedger is the only code path that writes org_bank_accounts.balance.
type PgxBalanceLedger struct {
	BaseRepository
}

func newPgxBalanceLedger(pool *pgxpool.Pool) portsrepo.BalanceLedger {
	return &PgxBalanceLedger{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceLedger = (*PgxBalanceLedger)(nil)

// ExecuteTransaction locks the transaction row and then its account row,
// applies the balance delta and records the approval in one database
// transaction. Lock order is always transaction before account.
func (r *PgxBalanceLedger) ExecuteTransaction(ctx context.Context, transactionID string, decision domain.BankDecision, now time.Time) (*domain.Transaction, *domain.Account, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	txn, err := findTransaction(ctx, tx, transactionID, true)
	if err != nil {
		return nil, nil, err
	}
	if txn.Status != domain.StatusClientApproved {
		return nil, nil, domain.ErrTransactionRaceLost
	}

	account, err := findAccount(ctx, tx, txn.AccountID, true)
	if err != nil {
		return nil, nil, err
	}
	balance, err := accounting.ApplyExecution(*account, *txn)
	if err != nil {
		return nil, nil, err
	}

	txn.RecordDecision(decision, now)
	_, err = tx.Exec(ctx, `
		UPDATE org_bank_transactions
		SET status = $2, bank_approver_id = $3, bank_approval_level = $4, bank_approved = TRUE,
		    bank_approval_note = $5, completed_at = $6, last_updated_at = $6
		WHERE transaction_id = $1;
	`, transactionID, string(txn.Status), decision.OfficerID, string(decision.Level), txn.BankApprovalNote, now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to complete transaction %s: %w", transactionID, err)
	}

	if !balance.Equal(account.Balance) {
		_, err = tx.Exec(ctx, `
			UPDATE org_bank_accounts
			SET balance = $2, last_updated_at = $3
			WHERE account_id = $1;
		`, account.AccountID, balance, now)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to update balance for account %s: %w", account.AccountID, err)
		}
		account.Balance = balance
		account.LastUpdatedAt = now
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return txn, account, nil
}
