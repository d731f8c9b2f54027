package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/org_banking/internal/apperrors"
	"github.com/SscSPs/org_banking/internal/core/domain"
	portsrepo "github.com/SscSPs/org_banking/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/org_banking/internal/core/ports/services"
	"github.com/SscSPs/org_banking/internal/core/services"
	"github.com/SscSPs/org_banking/internal/dto"
	"github.com/SscSPs/org_banking/internal/platform/config"
	"github.com/SscSPs/org_banking/internal/repositories/memory"
	"github.com/SscSPs/org_banking/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	orgID     = "org-1"
	accountID = "acc-1"
	alice     = "alice"
	bob       = "bob"
	carol     = "carol"
	manager   = "officer-manager"
	chairman  = "officer-chair"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type engine struct {
	store *memory.Store
	svc   *portssvc.ServiceContainer
	clock *testClock
	ctx   context.Context
}

// newEngine wires the real services over the in-memory store: alice and
// carol may manage treasury, bob is a plain member.
func newEngine(t *testing.T, balance int64, signatures int, level domain.BankApprovalLevel) *engine {
	t.Helper()
	store := memory.NewStore()
	clock := &testClock{now: time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)}

	store.PutAccount(domain.Account{
		AccountID:                accountID,
		OrganizationID:           orgID,
		AccountName:              "Treasury",
		AccountType:              domain.Treasury,
		Balance:                  decimal.NewFromInt(balance),
		CurrencyCode:             domain.DefaultCurrency,
		IsActive:                 true,
		ClientSignaturesRequired: signatures,
		BankApprovalLevel:        level,
		AuditFields:              domain.AuditFields{CreatedAt: clock.now.AddDate(0, -1, 0)},
	})
	store.PutMember(orgID, alice, "LEADER")
	store.PutMember(orgID, carol, "TREASURER")
	store.PutMember(orgID, bob, "MEMBER")
	store.PutPermission(domain.OrgPermission{OrganizationID: orgID, Role: "LEADER", CanManageTreasury: true})
	store.PutPermission(domain.OrgPermission{OrganizationID: orgID, Role: "TREASURER", CanManageTreasury: true})
	store.PutPermission(domain.OrgPermission{OrganizationID: orgID, Role: "MEMBER", CanManageTreasury: false})
	store.PutOfficer(manager, domain.LevelManager)
	store.PutOfficer(chairman, domain.LevelChairman)

	cfg := &config.Config{
		EnforceOfficerSeniority: true,
		ReconciliationTimezone:  time.UTC,
		ReconciliationLockTTL:   time.Minute,
	}
	svc := services.NewServiceContainer(cfg, store.Provider(), services.WithClock(clock.Now))
	return &engine{store: store, svc: svc, clock: clock, ctx: context.Background()}
}

func (e *engine) initiate(t *testing.T, initiator string, txType domain.TransactionType, amount int64) (*domain.Transaction, error) {
	t.Helper()
	return e.svc.Transaction.InitiateTransaction(e.ctx, initiator, dto.InitiateTransactionRequest{
		AccountID:   accountID,
		Type:        txType,
		Amount:      decimal.NewFromInt(amount),
		Description: "scenario",
	})
}

func (e *engine) balance(t *testing.T) decimal.Decimal {
	t.Helper()
	account, err := e.store.FindAccountByID(e.ctx, accountID)
	require.NoError(t, err)
	return account.Balance
}

func TestScenario_SingleSignatureOutgoingApprovedAndReported(t *testing.T) {
	e := newEngine(t, 5000, 1, domain.LevelManager)

	txn, err := e.initiate(t, alice, domain.Outgoing, 100)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClientApproved, txn.Status)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(5000)), "initiation never moves money")

	e.clock.Advance(time.Hour)
	completed, err := e.svc.Approval.BankApproveTransaction(e.ctx, txn.TransactionID, manager, true, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, completed.Status)
	require.NotNil(t, completed.BankApproved)
	assert.True(t, *completed.BankApproved)
	assert.Equal(t, manager, *completed.BankApproverID)
	assert.Equal(t, domain.LevelManager, *completed.BankApprovalLevel)
	require.NotNil(t, completed.CompletedAt)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(4900)))

	e.clock.Advance(24 * time.Hour)
	generated, err := e.svc.Reconciliation.GenerateDailyReports(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, generated)

	report, err := e.svc.Reconciliation.GetDailyReport(e.ctx, accountID, alice, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, report.TotalOutgoing.Equal(decimal.NewFromInt(100)))
	assert.True(t, report.TotalIncoming.IsZero())
	assert.True(t, report.ClosingBalance.Equal(decimal.NewFromInt(4900)))
	assert.True(t, report.OpeningBalance.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, 1, report.TxCount)
	assert.Equal(t, 0, report.PendingCount)
	require.Len(t, report.Transactions, 1)
	assert.Equal(t, txn.TransactionID, report.Transactions[0].TransactionID)
	require.NotNil(t, report.Transactions[0].ReportID)
	assert.Equal(t, report.ReportID, *report.Transactions[0].ReportID)

	again, err := e.svc.Reconciliation.GenerateDailyReports(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again, "second run for the same day is a no-op")

	list, err := e.svc.Reconciliation.GetDailyReports(e.ctx, accountID, alice, dto.ListReportsParams{})
	require.NoError(t, err)
	assert.Len(t, list.Reports, 1)
	assert.Equal(t, 30, list.Pagination.Limit)
	assert.Equal(t, "2024-03-09", list.Reports[0].ReportDate)
}

func TestScenario_OverdraftInitiationRejected(t *testing.T) {
	e := newEngine(t, 5000, 1, domain.LevelManager)

	_, err := e.initiate(t, alice, domain.Outgoing, 6000)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(5000)))

	_, total, err := e.store.ListTransactions(e.ctx, portsrepo.TransactionFilter{AccountID: accountID})
	require.NoError(t, err)
	assert.Zero(t, total, "no row is created")
}

func TestScenario_TwoSignaturesThenRejected(t *testing.T) {
	e := newEngine(t, 5000, 2, domain.LevelManager)

	txn, err := e.initiate(t, alice, domain.Outgoing, 100)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, txn.Status)
	assert.Len(t, txn.ClientSignatures, 1)

	_, err = e.svc.Approval.BankApproveTransaction(e.ctx, txn.TransactionID, manager, true, "")
	assert.ErrorIs(t, err, domain.ErrNotClientApproved, "officer cannot act before quorum")

	_, err = e.svc.Transaction.SignTransaction(e.ctx, txn.TransactionID, alice)
	assert.ErrorIs(t, err, domain.ErrAlreadySigned)

	_, err = e.svc.Transaction.SignTransaction(e.ctx, txn.TransactionID, "outsider")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	signed, err := e.svc.Transaction.SignTransaction(e.ctx, txn.TransactionID, bob)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClientApproved, signed.Status)
	assert.True(t, signed.ClientApproved)
	require.Len(t, signed.ClientSignatures, 2)
	assert.Equal(t, alice, signed.ClientSignatures[0].UserID)
	assert.Equal(t, bob, signed.ClientSignatures[1].UserID)

	_, err = e.svc.Transaction.SignTransaction(e.ctx, txn.TransactionID, carol)
	assert.ErrorIs(t, err, domain.ErrNotPending, "already quorate")

	rejected, err := e.svc.Approval.BankApproveTransaction(e.ctx, txn.TransactionID, manager, false, "Missing invoice")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.BankApproved)
	assert.False(t, *rejected.BankApproved)
	assert.Equal(t, "Missing invoice", *rejected.BankApprovalNote)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(5000)))
}

func TestScenario_TerminalStatesRefuseFurtherSteps(t *testing.T) {
	e := newEngine(t, 5000, 1, domain.LevelManager)

	txn, err := e.initiate(t, alice, domain.Outgoing, 100)
	require.NoError(t, err)
	_, err = e.svc.Approval.BankApproveTransaction(e.ctx, txn.TransactionID, manager, true, "")
	require.NoError(t, err)

	_, err = e.svc.Approval.BankApproveTransaction(e.ctx, txn.TransactionID, manager, true, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation, "second approve must fail")
	_, err = e.svc.Transaction.SignTransaction(e.ctx, txn.TransactionID, bob)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = e.svc.Transaction.CancelTransaction(e.ctx, txn.TransactionID, alice)
	assert.ErrorIs(t, err, domain.ErrNotCancellable)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(4900)), "no re-debit")

	cancelled, err := e.initiate(t, alice, domain.Outgoing, 10)
	require.NoError(t, err)
	_, err = e.svc.Transaction.CancelTransaction(e.ctx, cancelled.TransactionID, bob)
	assert.ErrorIs(t, err, domain.ErrNotInitiator)
	result, err := e.svc.Transaction.CancelTransaction(e.ctx, cancelled.TransactionID, alice)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, result.Status)
	require.NotNil(t, result.CancelledAt)
	_, err = e.svc.Transaction.CancelTransaction(e.ctx, cancelled.TransactionID, alice)
	assert.ErrorIs(t, err, domain.ErrNotCancellable)
	_, err = e.svc.Approval.BankApproveTransaction(e.ctx, cancelled.TransactionID, manager, true, "")
	assert.ErrorIs(t, err, domain.ErrNotClientApproved)
}

func TestScenario_SeniorityEnforced(t *testing.T) {
	e := newEngine(t, 5000, 1, domain.LevelSeniorManager)

	txn, err := e.initiate(t, alice, domain.Outgoing, 100)
	require.NoError(t, err)

	_, err = e.svc.Approval.BankApproveTransaction(e.ctx, txn.TransactionID, manager, true, "")
	assert.ErrorIs(t, err, domain.ErrOfficerLevelTooLow)
	_, err = e.svc.Approval.BankApproveTransaction(e.ctx, txn.TransactionID, "teller", true, "")
	assert.ErrorIs(t, err, domain.ErrOfficerNotRecognized)

	completed, err := e.svc.Approval.BankApproveTransaction(e.ctx, txn.TransactionID, chairman, true, "")
	require.NoError(t, err)
	assert.Equal(t, domain.LevelSeniorManager, *completed.BankApprovalLevel, "records the account's level")
}

func TestScenario_ExecutionRechecksFunds(t *testing.T) {
	e := newEngine(t, 5000, 1, domain.LevelManager)

	first, err := e.initiate(t, alice, domain.Outgoing, 3000)
	require.NoError(t, err)
	second, err := e.initiate(t, carol, domain.TaxPayment, 3000)
	require.NoError(t, err)

	_, err = e.svc.Approval.BankApproveTransaction(e.ctx, first.TransactionID, manager, true, "")
	require.NoError(t, err)

	_, err = e.svc.Approval.BankApproveTransaction(e.ctx, second.TransactionID, manager, true, "")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	stale, err := e.store.FindTransactionByID(e.ctx, second.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusClientApproved, stale.Status, "failed execution leaves the pre-approval status")
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(2000)))
}

func TestScenario_InitiationPermissions(t *testing.T) {
	e := newEngine(t, 5000, 1, domain.LevelManager)

	_, err := e.initiate(t, bob, domain.Outgoing, 1)
	assert.ErrorIs(t, err, domain.ErrNoTreasuryPermission)
	_, err = e.initiate(t, "outsider", domain.Outgoing, 1)
	assert.ErrorIs(t, err, domain.ErrNotMember)

	_, err = e.svc.Transaction.InitiateTransaction(e.ctx, alice, dto.InitiateTransactionRequest{
		AccountID: "missing", Type: domain.Outgoing, Amount: decimal.NewFromInt(1), Description: "x",
	})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	account, err := e.store.FindAccountByID(e.ctx, accountID)
	require.NoError(t, err)
	account.IsActive = false
	e.store.PutAccount(*account)
	_, err = e.initiate(t, alice, domain.Incoming, 1)
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
}

func TestScenario_BalanceMatchesCompletedFlow(t *testing.T) {
	e := newEngine(t, 1000, 1, domain.LevelManager)
	initial := e.balance(t)

	steps := []struct {
		txType  domain.TransactionType
		amount  int64
		approve bool
	}{
		{domain.Incoming, 250, true},
		{domain.Outgoing, 400, true},
		{domain.TaxPayment, 50, false},
		{domain.Internal, 900, true},
		{domain.Outgoing, 100, true},
		{domain.Incoming, 75, false},
	}
	for _, step := range steps {
		txn, err := e.initiate(t, alice, step.txType, step.amount)
		require.NoError(t, err)
		_, err = e.svc.Approval.BankApproveTransaction(e.ctx, txn.TransactionID, manager, step.approve, "")
		require.NoError(t, err)
	}
	pending, err := e.initiate(t, alice, domain.Outgoing, 10)
	require.NoError(t, err)

	all, _, err := e.store.ListTransactions(e.ctx, portsrepo.TransactionFilter{AccountID: accountID})
	require.NoError(t, err)
	want := initial.Add(accounting.NetFlow(all))
	assert.True(t, e.balance(t).Equal(want), "balance %s, want %s", e.balance(t), want)
	assert.True(t, e.balance(t).Equal(decimal.NewFromInt(750)))

	open, err := e.svc.Transaction.GetPendingTransactions(e.ctx, accountID, bob)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, pending.TransactionID, open[0].TransactionID)

	accounts, err := e.svc.Account.GetOrgAccounts(e.ctx, orgID, bob)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, 7, accounts[0].TransactionCount)

	_, err = e.svc.Account.GetOrgAccounts(e.ctx, orgID, "outsider")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
