package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/org_banking/internal/apperrors"
	"github.com/SscSPs/org_banking/internal/core/domain"
	portsrepo "github.com/SscSPs/org_banking/internal/core/ports/repositories"
	"github.com/SscSPs/org_banking/internal/models"
	"github.com/SscSPs/org_banking/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, account_id, type, amount, currency_code, description,
		recipient_account, initiator_id, client_approved, status,
		bank_approver_id, bank_approval_level, bank_approved, bank_approval_note,
		completed_at, cancelled_at, report_date, report_id, reported_at,
		created_at, last_updated_at`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for org bank transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.TransactionType,
		&m.Amount,
		&m.CurrencyCode,
		&m.Description,
		&m.RecipientAccount,
		&m.InitiatorID,
		&m.ClientApproved,
		&m.Status,
		&m.BankApproverID,
		&m.BankApprovalLevel,
		&m.BankApproved,
		&m.BankApprovalNote,
		&m.CompletedAt,
		&m.CancelledAt,
		&m.ReportDate,
		&m.ReportID,
		&m.ReportedAt,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// loadSignatures fetches the signature rows of every id in one round trip,
// keyed by transaction and ordered by position.
func loadSignatures(ctx context.Context, q querier, transactionIDs []string) (map[string][]models.Signature, error) {
	out := make(map[string][]models.Signature, len(transactionIDs))
	if len(transactionIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT transaction_id, position, user_id, signature_token, signed_at
		FROM org_bank_tx_signatures
		WHERE transaction_id = ANY($1)
		ORDER BY transaction_id, position;
	`
	rows, err := q.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query signatures: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Signature
		if err := rows.Scan(&s.TransactionID, &s.Position, &s.UserID, &s.SignatureToken, &s.SignedAt); err != nil {
			return nil, fmt.Errorf("failed to scan signature row: %w", err)
		}
		out[s.TransactionID] = append(out[s.TransactionID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating signature rows: %w", err)
	}
	return out, nil
}

// queryTransactions runs a SELECT over transactionColumns and attaches signatures.
func queryTransactions(ctx context.Context, q querier, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	ms := []models.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.TransactionID
	}
	sigs, err := loadSignatures(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	txns := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		m.Signatures = sigs[m.TransactionID]
		txns[i] = mapping.ToDomainTransaction(m)
	}
	return txns, nil
}

// findTransaction reads one transaction and its signatures through q,
// optionally holding the transaction row lock.
func findTransaction(ctx context.Context, q querier, transactionID string, forUpdate bool) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM org_bank_transactions WHERE transaction_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	m, err := scanTransaction(q.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	sigs, err := loadSignatures(ctx, q, []string{transactionID})
	if err != nil {
		return nil, err
	}
	m.Signatures = sigs[transactionID]
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// raceOrNotFound explains a guarded UPDATE that touched no row.
func raceOrNotFound(ctx context.Context, q querier, transactionID string) error {
	if _, err := findTransaction(ctx, q, transactionID, false); err != nil {
		return err
	}
	return domain.ErrTransactionRaceLost
}

func insertSignature(ctx context.Context, q querier, s models.Signature) error {
	_, err := q.Exec(ctx, `
		INSERT INTO org_bank_tx_signatures (transaction_id, position, user_id, signature_token, signed_at)
		VALUES ($1, $2, $3, $4, $5);
	`, s.TransactionID, s.Position, s.UserID, s.SignatureToken, s.SignedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadySigned
		}
		return fmt.Errorf("failed to insert signature for transaction %s: %w", s.TransactionID, err)
	}
	return nil
}

// SaveTransaction inserts a new transaction and its initial signatures in one database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, transaction domain.Transaction) error {
	m := mapping.ToModelTransaction(transaction)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO org_bank_transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`,
		m.TransactionID,
		m.AccountID,
		m.TransactionType,
		m.Amount,
		m.CurrencyCode,
		m.Description,
		m.RecipientAccount,
		m.InitiatorID,
		m.ClientApproved,
		m.Status,
		m.BankApproverID,
		m.BankApprovalLevel,
		m.BankApproved,
		m.BankApprovalNote,
		m.CompletedAt,
		m.CancelledAt,
		m.ReportDate,
		m.ReportID,
		m.ReportedAt,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}

	for _, s := range m.Signatures {
		if err := insertSignature(ctx, tx, s); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction with its signatures.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return findTransaction(ctx, r.Pool, transactionID, false)
}

// ListTransactions returns one page of an account's transactions, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, int, error) {
	where := `WHERE account_id = $1`
	args := []any{filter.AccountID}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where += ` AND status = $` + strconv.Itoa(len(args))
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM org_bank_transactions `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for account %s: %w", filter.AccountID, err)
	}
	if total == 0 {
		return []domain.Transaction{}, 0, nil
	}

	args = append(args, filter.Limit, filter.Offset)
	query := `SELECT ` + transactionColumns + ` FROM org_bank_transactions ` + where +
		` ORDER BY created_at DESC, transaction_id DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	txns, err := queryTransactions(ctx, r.Pool, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return txns, int(total), nil
}

// ListOpenTransactions returns PENDING and CLIENT_APPROVED transactions, oldest first.
func (r *PgxTransactionRepository) ListOpenTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM org_bank_transactions
		WHERE account_id = $1 AND status = ANY($2)
		ORDER BY created_at ASC, transaction_id ASC`
	return queryTransactions(ctx, r.Pool, query, accountID, statusStrings(domain.OpenStatuses))
}

// FindTransactionsInWindow returns the account's transactions with report_date in [from, to).
func (r *PgxTransactionRepository) FindTransactionsInWindow(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM org_bank_transactions
		WHERE account_id = $1 AND report_date >= $2 AND report_date < $3
		ORDER BY report_date ASC, transaction_id ASC`
	return queryTransactions(ctx, r.Pool, query, accountID, from, to)
}

// FindTransactionsByReportID returns the transactions linked to a daily report.
func (r *PgxTransactionRepository) FindTransactionsByReportID(ctx context.Context, reportID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM org_bank_transactions
		WHERE report_id = $1
		ORDER BY report_date ASC, transaction_id ASC`
	return queryTransactions(ctx, r.Pool, query, reportID)
}

// AppendSignature adds a signature while holding the transaction row, so two
// concurrent signers are serialized and neither signature is lost.
func (r *PgxTransactionRepository) AppendSignature(ctx context.Context, transactionID string, sig domain.ClientSignature, required int) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	txn, err := findTransaction(ctx, tx, transactionID, true)
	if err != nil {
		return nil, err
	}
	if err := txn.AddSignature(sig, required); err != nil {
		return nil, err
	}

	position := len(txn.ClientSignatures) - 1
	if err := insertSignature(ctx, tx, mapping.ToModelSignature(transactionID, position, sig)); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE org_bank_transactions
		SET status = $2, client_approved = $3, last_updated_at = $4
		WHERE transaction_id = $1;
	`, transactionID, string(txn.Status), txn.ClientApproved, txn.LastUpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update quorum for transaction %s: %w", transactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return txn, nil
}

// RejectTransaction records a rejection only while the row is still CLIENT_APPROVED.
func (r *PgxTransactionRepository) RejectTransaction(ctx context.Context, transactionID string, decision domain.BankDecision, now time.Time) (*domain.Transaction, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE org_bank_transactions
		SET status = $2, bank_approver_id = $3, bank_approval_level = $4, bank_approved = FALSE,
		    bank_approval_note = $5, last_updated_at = $6
		WHERE transaction_id = $1 AND status = $7;
	`,
		transactionID,
		string(domain.StatusRejected),
		decision.OfficerID,
		string(decision.Level),
		decision.NoteOrDefault(),
		now,
		string(domain.StatusClientApproved),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reject transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, raceOrNotFound(ctx, r.Pool, transactionID)
	}
	return r.FindTransactionByID(ctx, transactionID)
}

// CancelTransaction moves an open transaction to CANCELLED.
func (r *PgxTransactionRepository) CancelTransaction(ctx context.Context, transactionID string, now time.Time) (*domain.Transaction, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE org_bank_transactions
		SET status = $2, cancelled_at = $3, last_updated_at = $3
		WHERE transaction_id = $1 AND status = ANY($4);
	`, transactionID, string(domain.StatusCancelled), now, statusStrings(domain.OpenStatuses))
	if err != nil {
		return nil, fmt.Errorf("failed to cancel transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, raceOrNotFound(ctx, r.Pool, transactionID)
	}
	return r.FindTransactionByID(ctx, transactionID)
}

func statusStrings(statuses []domain.TransactionStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
