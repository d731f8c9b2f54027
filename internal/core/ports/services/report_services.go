package services

import (
	"context"
	"time"

	"github.com/SscSPs/org_banking/internal/core/domain"
	"github.com/SscSPs/org_banking/internal/dto"
)

// ReconciliationSvc generates the daily reports.
type ReconciliationSvc interface {
	// GenerateDailyReports reconciles the recent completed days for every
	// active account, filling any missing report, and returns how many
	// reports were created.
	GenerateDailyReports(ctx context.Context) (int, error)

	// GenerateDailyReportsForDate reconciles the calendar day containing day.
	GenerateDailyReportsForDate(ctx context.Context, day time.Time) (int, error)
}

// ReportReaderSvc defines read operations for daily reports.
type ReportReaderSvc interface {
	// GetDailyReports retrieves one page of an account's reports, latest first.
	GetDailyReports(ctx context.Context, accountID string, userID string, params dto.ListReportsParams) (*dto.ListReportsResponse, error)

	// GetDailyReport retrieves one report with the transactions linked to it.
	GetDailyReport(ctx context.Context, accountID string, userID string, date time.Time) (*domain.DailyReport, error)
}

// ReportSvcFacade combines all report-related service interfaces
type ReportSvcFacade interface {
	ReconciliationSvc
	ReportReaderSvc
}
