package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/org_banking/internal/apperrors"
	"github.com/SscSPs/org_banking/internal/core/domain"
	portsrepo "github.com/SscSPs/org_banking/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/org_banking/internal/core/ports/services"
	"github.com/SscSPs/org_banking/internal/dto"
	"github.com/SscSPs/org_banking/internal/platform/lock"
	"github.com/SscSPs/org_banking/internal/platform/metrics"
	"github.com/SscSPs/org_banking/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	defaultReportPageSize = 30
	maxReportPageSize     = 50

	defaultReconciliationLockTTL = 10 * time.Minute
)

// reconciliationService builds one DailyReport per active account per
// calendar day and serves the report queries.
type reconciliationService struct {
	BaseService
	accountRepo     portsrepo.AccountReader
	transactionRepo portsrepo.TransactionReader
	reportRepo      portsrepo.ReportRepositoryFacade
	locker          lock.Locker
	lockTTL         time.Duration
	location        *time.Location
	lookbackDays    int
}

// ReconciliationServiceOption is a functional option for configuring the reconciliation service
type ReconciliationServiceOption func(*reconciliationService)

// WithReconciliationLocker guards each run with a lease so only one replica
// reconciles a given day at a time.
func WithReconciliationLocker(locker lock.Locker, ttl time.Duration) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		if locker != nil {
			s.locker = locker
		}
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

// WithReconciliationLocation sets the timezone calendar days are cut in.
func WithReconciliationLocation(loc *time.Location) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithReconciliationLookback makes each scheduled run cover the last days
// completed days, so a day that failed for some account is retried.
func WithReconciliationLookback(days int) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		if days > 0 {
			s.lookbackDays = days
		}
	}
}

// WithReconciliationAuthorizer adds the organization authorizer used by report reads
func WithReconciliationAuthorizer(authorizer portssvc.OrgAuthorizerSvc) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.Authorizer = authorizer
	}
}

// WithReconciliationLogger sets the fallback logger
func WithReconciliationLogger(logger *slog.Logger) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.Logger = logger
	}
}

// WithReconciliationMetrics records run outcomes
func WithReconciliationMetrics(recorder *metrics.Recorder) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.Metrics = recorder
	}
}

// WithReconciliationClock overrides time.Now
func WithReconciliationClock(clock Clock) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.Now = clock
	}
}

// NewReconciliationService creates the report service.
func NewReconciliationService(accountRepo portsrepo.AccountReader, transactionRepo portsrepo.TransactionReader, reportRepo portsrepo.ReportRepositoryFacade, options ...ReconciliationServiceOption) portssvc.ReportSvcFacade {
	svc := &reconciliationService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		reportRepo:      reportRepo,
		locker:          lock.NoopLocker{},
		lockTTL:         defaultReconciliationLockTTL,
		location:        time.UTC,
		lookbackDays:    1,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportSvcFacade = (*reconciliationService)(nil)

// GenerateDailyReports reconciles the lookback days oldest first. Days and
// accounts already reported are skipped, so re-runs only fill gaps.
func (s *reconciliationService) GenerateDailyReports(ctx context.Context) (int, error) {
	total := 0
	var errs []error
	for _, window := range domain.RecentDayWindows(s.CurrentTime(), s.location, s.lookbackDays) {
		generated, err := s.run(ctx, window)
		total += generated
		if err != nil {
			errs = append(errs, err)
		}
	}
	return total, errors.Join(errs...)
}

func (s *reconciliationService) GenerateDailyReportsForDate(ctx context.Context, day time.Time) (int, error) {
	return s.run(ctx, domain.CalendarDayWindow(day, s.location))
}

func (s *reconciliationService) run(ctx context.Context, window domain.DayWindow) (int, error) {
	started := time.Now()
	reportDate := window.Date().Format(dto.ReportDateLayout)
	logger := s.GetLogger(ctx).With(slog.String("report_date", reportDate))

	handle, acquired, err := s.locker.TryLock(ctx, "reconciliation:"+reportDate, s.lockTTL)
	if err != nil {
		logger.Error("Failed to acquire reconciliation lock", slog.String("error", err.Error()))
		return 0, err
	}
	if !acquired {
		logger.Info("Reconciliation already running elsewhere, skipping")
		return 0, nil
	}
	defer func() {
		if err := handle.Unlock(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, lock.ErrLockNotHeld) {
			logger.Warn("Failed to release reconciliation lock", slog.String("error", err.Error()))
		}
	}()

	accounts, err := s.accountRepo.ListActiveAccounts(ctx)
	if err != nil {
		logger.Error("Failed to list active accounts", slog.String("error", err.Error()))
		return 0, err
	}

	generated, skipped, failed := 0, 0, 0
	for _, account := range accounts {
		outcome, err := s.reconcileAccount(ctx, account, window)
		s.Metrics.ReconciliationAccount(outcome)
		switch outcome {
		case metrics.OutcomeGenerated:
			generated++
		case metrics.OutcomeSkipped:
			skipped++
		default:
			failed++
			logger.Error("Failed to generate daily report",
				slog.String("account_id", account.AccountID),
				slog.String("error", err.Error()))
		}
	}

	s.Metrics.ReconciliationRun(time.Since(started))
	logger.Info("Reconciliation finished",
		slog.Int("accounts", len(accounts)),
		slog.Int("generated", generated),
		slog.Int("skipped", skipped),
		slog.Int("failed", failed))
	return generated, nil
}

// reconcileAccount builds and stores one account's report. Panics are turned
// into failures so one account cannot abort the batch.
func (s *reconciliationService) reconcileAccount(ctx context.Context, account domain.Account, window domain.DayWindow) (outcome string, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = metrics.OutcomeFailed
			err = fmt.Errorf("panic while reconciling account %s: %v", account.AccountID, r)
		}
	}()

	reportDate := window.Date()
	if _, err := s.reportRepo.FindReportByAccountAndDate(ctx, account.AccountID, reportDate); err == nil {
		return metrics.OutcomeSkipped, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return metrics.OutcomeFailed, err
	}

	txns, err := s.transactionRepo.FindTransactionsInWindow(ctx, account.AccountID, window.Start, window.End)
	if err != nil {
		return metrics.OutcomeFailed, err
	}

	// Closing balance is the balance at report time, not at batch start.
	current, err := s.accountRepo.FindAccountByID(ctx, account.AccountID)
	if err != nil {
		return metrics.OutcomeFailed, err
	}

	now := s.CurrentTime()
	report := domain.BuildDailyReport(uuid.NewString(), *current, window, txns, now)
	if err := s.reportRepo.CreateReportAndLink(ctx, report, domain.TransactionIDs(txns), now); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return metrics.OutcomeSkipped, nil
		}
		return metrics.OutcomeFailed, err
	}

	s.LogDebug(ctx, "Daily report generated",
		slog.String("account_id", account.AccountID),
		slog.String("report_id", report.ReportID),
		slog.Int("tx_count", report.TxCount))
	return metrics.OutcomeGenerated, nil
}

func (s *reconciliationService) GetDailyReports(ctx context.Context, accountID string, userID string, params dto.ListReportsParams) (*dto.ListReportsResponse, error) {
	if _, err := loadAccountForMember(ctx, &s.BaseService, s.accountRepo, accountID, userID); err != nil {
		return nil, err
	}

	window := pagination.Clamp(params.Page, params.Limit, defaultReportPageSize, maxReportPageSize)
	reports, total, err := s.reportRepo.ListReports(ctx, accountID, window.Limit, window.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list daily reports",
			slog.String("account_id", accountID))
		return nil, err
	}

	return &dto.ListReportsResponse{
		Reports:    dto.ToDailyReportResponses(reports),
		Pagination: dto.ToPaginationResponse(window, total),
	}, nil
}

func (s *reconciliationService) GetDailyReport(ctx context.Context, accountID string, userID string, date time.Time) (*domain.DailyReport, error) {
	if _, err := loadAccountForMember(ctx, &s.BaseService, s.accountRepo, accountID, userID); err != nil {
		return nil, err
	}

	report, err := s.reportRepo.FindReportByAccountAndDate(ctx, accountID, domain.CalendarDate(date))
	if err != nil {
		return nil, err
	}

	txns, err := s.transactionRepo.FindTransactionsByReportID(ctx, report.ReportID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load report transactions",
			slog.String("report_id", report.ReportID))
		return nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	report.Transactions = txns
	return report, nil
}
