package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/org_banking/internal/core/domain"
)

// ReportReader defines read operations for daily reports.
type ReportReader interface {
	// FindReportByAccountAndDate returns the report for a calendar date or ErrNotFound.
	FindReportByAccountAndDate(ctx context.Context, accountID string, reportDate time.Time) (*domain.DailyReport, error)

	// ListReports returns one page of an account's reports, latest date first,
	// and the total count.
	ListReports(ctx context.Context, accountID string, limit int, offset int) ([]domain.DailyReport, int, error)
}

// ReportWriter defines write operations for daily reports.
type ReportWriter interface {
	// CreateReportAndLink inserts the report and stamps transactionIDs with its
	// id in one atomic unit. A report already present for the same
	// (account, date) yields domain.ErrReportAlreadyExists.
	CreateReportAndLink(ctx context.Context, report domain.DailyReport, transactionIDs []string, reportedAt time.Time) error
}

// ReportRepositoryFacade combines all report-related repository interfaces
type ReportRepositoryFacade interface {
	ReportReader
	ReportWriter
}
