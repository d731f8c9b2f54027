package services

import (
	"log/slog"

	portsrepo "github.com/SscSPs/org_banking/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/org_banking/internal/core/ports/services"
	"github.com/SscSPs/org_banking/internal/platform/config"
	"github.com/SscSPs/org_banking/internal/platform/lock"
	"github.com/SscSPs/org_banking/internal/platform/metrics"
)

// ContainerOption supplies process-wide collaborators to the container.
type ContainerOption func(*containerDeps)

type containerDeps struct {
	logger   *slog.Logger
	recorder *metrics.Recorder
	locker   lock.Locker
	clock    Clock
}

// WithLogger sets the logger services fall back to outside a request.
func WithLogger(logger *slog.Logger) ContainerOption {
	return func(d *containerDeps) { d.logger = logger }
}

// WithMetrics wires the prometheus recorder.
func WithMetrics(recorder *metrics.Recorder) ContainerOption {
	return func(d *containerDeps) { d.recorder = recorder }
}

// WithLocker wires the reconciliation run lock.
func WithLocker(locker lock.Locker) ContainerOption {
	return func(d *containerDeps) { d.locker = locker }
}

// WithClock pins the time source of every service.
func WithClock(clock Clock) ContainerOption {
	return func(d *containerDeps) { d.clock = clock }
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ContainerOption) *portssvc.ServiceContainer {
	deps := containerDeps{logger: slog.Default(), locker: lock.NoopLocker{}}
	for _, option := range options {
		option(&deps)
	}

	container := &portssvc.ServiceContainer{}

	// Authorizer first; every other service depends on it.
	container.Authorizer = NewOrgAuthorizer(repos.MembershipRepo, repos.PermissionRepo, deps.logger)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountAuthorizer(container.Authorizer),
		WithAccountLogger(deps.logger),
	)

	container.Transaction = NewTransactionService(
		repos.AccountRepo,
		repos.TransactionRepo,
		WithTransactionAuthorizer(container.Authorizer),
		WithTransactionLogger(deps.logger),
		WithTransactionMetrics(deps.recorder),
		WithTransactionClock(deps.clock),
	)

	executor := NewBalanceExecutor(repos.Ledger, deps.logger, deps.recorder, deps.clock)
	container.Approval = NewApprovalService(
		repos.AccountRepo,
		repos.TransactionRepo,
		executor,
		WithOfficerSeniority(repos.OfficerRepo, cfg.EnforceOfficerSeniority),
		WithApprovalLogger(deps.logger),
		WithApprovalMetrics(deps.recorder),
		WithApprovalClock(deps.clock),
	)

	container.Reconciliation = NewReconciliationService(
		repos.AccountRepo,
		repos.TransactionRepo,
		repos.ReportRepo,
		WithReconciliationAuthorizer(container.Authorizer),
		WithReconciliationLocker(deps.locker, cfg.ReconciliationLockTTL),
		WithReconciliationLocation(cfg.ReconciliationTimezone),
		WithReconciliationLookback(cfg.ReconciliationLookbackDays),
		WithReconciliationLogger(deps.logger),
		WithReconciliationMetrics(deps.recorder),
		WithReconciliationClock(deps.clock),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.ApprovalSvc          = (*approvalService)(nil)
	_ portssvc.BalanceExecutorSvc   = (*balanceExecutor)(nil)
	_ portssvc.ReportSvcFacade      = (*reconciliationService)(nil)
	_ portssvc.OrgAuthorizerSvc     = (*orgAuthorizer)(nil)
)
