package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/org_banking/internal/core/domain"
	portsrepo "github.com/SscSPs/org_banking/internal/core/ports/repositories"
	"github.com/SscSPs/org_banking/internal/models"
	"github.com/SscSPs/org_banking/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `a.account_id, a.organization_id, a.account_name, a.account_number, a.account_type,
		a.balance, a.currency_code, a.is_active, a.client_signatures_required, a.bank_approval_level,
		a.created_at, a.last_updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row, extra ...any) (models.Account, error) {
	var m models.Account
	dest := []any{
		&m.AccountID,
		&m.OrganizationID,
		&m.AccountName,
		&m.AccountNumber,
		&m.AccountType,
		&m.Balance,
		&m.CurrencyCode,
		&m.IsActive,
		&m.ClientSignaturesRequired,
		&m.BankApprovalLevel,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return m, err
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return findAccount(ctx, r.Pool, accountID, false)
}

// findAccount reads one account through q, optionally holding its row lock.
func findAccount(ctx context.Context, q querier, accountID string, forUpdate bool) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM org_bank_accounts a WHERE a.account_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	m, err := scanAccount(q.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// ListActiveAccountsByOrganization returns active accounts oldest first with
// their transaction counts.
func (r *PgxAccountRepository) ListActiveAccountsByOrganization(ctx context.Context, organizationID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `, COUNT(t.transaction_id)
		FROM org_bank_accounts a
		LEFT JOIN org_bank_transactions t ON t.account_id = a.account_id
		WHERE a.organization_id = $1 AND a.is_active = TRUE
		GROUP BY a.account_id
		ORDER BY a.created_at ASC, a.account_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var count int64
		m, err := scanAccount(rows, &count)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for organization %s: %w", organizationID, err)
		}
		m.TransactionCount = int(count)
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for organization %s: %w", organizationID, err)
	}
	return accounts, nil
}

// ListActiveAccounts returns every active account for reconciliation.
func (r *PgxAccountRepository) ListActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM org_bank_accounts a WHERE a.is_active = TRUE ORDER BY a.created_at ASC, a.account_id ASC`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active accounts: %w", err)
	}
	defer rows.Close()

	ms := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan active account row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating active account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}
