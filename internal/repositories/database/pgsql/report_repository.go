package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/org_banking/internal/core/domain"
	portsrepo "github.com/SscSPs/org_banking/internal/core/ports/repositories"
	"github.com/SscSPs/org_banking/internal/models"
	"github.com/SscSPs/org_banking/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reportColumns = `report_id, account_id, report_date, currency_code, opening_balance, closing_balance,
		total_incoming, total_outgoing, tx_count, pending_count, delivered_at, created_at`

type PgxReportRepository struct {
	BaseRepository
}

func newPgxReportRepository(pool *pgxpool.Pool) portsrepo.ReportRepositoryFacade {
	return &PgxReportRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportRepositoryFacade = (*PgxReportRepository)(nil)

func scanReport(row pgx.Row) (models.DailyReport, error) {
	var m models.DailyReport
	err := row.Scan(
		&m.ReportID,
		&m.AccountID,
		&m.ReportDate,
		&m.CurrencyCode,
		&m.OpeningBalance,
		&m.ClosingBalance,
		&m.TotalIncoming,
		&m.TotalOutgoing,
		&m.TxCount,
		&m.PendingCount,
		&m.DeliveredAt,
		&m.CreatedAt,
	)
	return m, err
}

// FindReportByAccountAndDate returns the report for one calendar date.
func (r *PgxReportRepository) FindReportByAccountAndDate(ctx context.Context, accountID string, reportDate time.Time) (*domain.DailyReport, error) {
	query := `SELECT ` + reportColumns + ` FROM org_bank_daily_reports WHERE account_id = $1 AND report_date = $2`
	m, err := scanReport(r.Pool.QueryRow(ctx, query, accountID, domain.CalendarDate(reportDate)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to find report for account %s: %w", accountID, err)
	}
	report := mapping.ToDomainDailyReport(m)
	return &report, nil
}

// ListReports returns one page of reports, latest date first, and the total.
func (r *PgxReportRepository) ListReports(ctx context.Context, accountID string, limit int, offset int) ([]domain.DailyReport, int, error) {
	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM org_bank_daily_reports WHERE account_id = $1`, accountID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reports for account %s: %w", accountID, err)
	}

	query := `SELECT ` + reportColumns + ` FROM org_bank_daily_reports
		WHERE account_id = $1
		ORDER BY report_date DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query reports for account %s: %w", accountID, err)
	}
	defer rows.Close()

	reports := []domain.DailyReport{}
	for rows.Next() {
		m, err := scanReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, mapping.ToDomainDailyReport(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating report rows: %w", err)
	}
	return reports, int(total), nil
}

// CreateReportAndLink inserts the report and stamps the still-unreported
// transactions with its id in one database transaction.
func (r *PgxReportRepository) CreateReportAndLink(ctx context.Context, report domain.DailyReport, transactionIDs []string, reportedAt time.Time) error {
	m := mapping.ToModelDailyReport(report)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO org_bank_daily_reports (`+reportColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`,
		m.ReportID,
		m.AccountID,
		m.ReportDate,
		m.CurrencyCode,
		m.OpeningBalance,
		m.ClosingBalance,
		m.TotalIncoming,
		m.TotalOutgoing,
		m.TxCount,
		m.PendingCount,
		m.DeliveredAt,
		m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrReportAlreadyExists
		}
		return fmt.Errorf("failed to insert report for account %s: %w", m.AccountID, err)
	}

	if len(transactionIDs) > 0 {
		_, err = tx.Exec(ctx, `
			UPDATE org_bank_transactions
			SET report_id = $1, reported_at = $2
			WHERE transaction_id = ANY($3) AND report_id IS NULL;
		`, m.ReportID, reportedAt, transactionIDs)
		if err != nil {
			return fmt.Errorf("failed to link transactions to report %s: %w", m.ReportID, err)
		}
	}

	return r.Commit(ctx, tx)
}
