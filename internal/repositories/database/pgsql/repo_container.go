package pgsql

import (
	portsrepo "github.com/SscSPs/org_banking/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	reportRepo := newPgxReportRepository(dbPool)
	ledger := newPgxBalanceLedger(dbPool)
	orgRepo := newPgxOrganizationRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
		ReportRepo:      reportRepo,
		Ledger:          ledger,
		MembershipRepo:  orgRepo,
		PermissionRepo:  orgRepo,
		OfficerRepo:     orgRepo,
	}
}
