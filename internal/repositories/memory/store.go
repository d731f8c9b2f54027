// Package memory keeps every repository port in process memory behind one
// mutex. It backs STORAGE_DRIVER=memory and the scenario tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/org_banking/internal/apperrors"
	"github.com/SscSPs/org_banking/internal/core/domain"
	portsrepo "github.com/SscSPs/org_banking/internal/core/ports/repositories"
	"github.com/SscSPs/org_banking/internal/utils/accounting"
)

// Store is a mutex-guarded in-process implementation of every repository
// port. All values handed out are copies.
type Store struct {
	mu sync.RWMutex

	accounts     map[string]domain.Account
	transactions map[string]domain.Transaction
	reports      map[string]domain.DailyReport
	reportKeys   map[string]string
	members      map[string]domain.MemberRole
	permissions  map[string]domain.OrgPermission
	officers     map[string]domain.BankApprovalLevel
}

var (
	_ portsrepo.AccountRepositoryFacade     = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.ReportRepositoryFacade      = (*Store)(nil)
	_ portsrepo.BalanceLedger               = (*Store)(nil)
	_ portsrepo.MembershipLookup            = (*Store)(nil)
	_ portsrepo.PermissionLookup            = (*Store)(nil)
	_ portsrepo.OfficerLookup               = (*Store)(nil)
)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]domain.Account),
		transactions: make(map[string]domain.Transaction),
		reports:      make(map[string]domain.DailyReport),
		reportKeys:   make(map[string]string),
		members:      make(map[string]domain.MemberRole),
		permissions:  make(map[string]domain.OrgPermission),
		officers:     make(map[string]domain.BankApprovalLevel),
	}
}

// Provider exposes the store through every repository port.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     s,
		TransactionRepo: s,
		ReportRepo:      s,
		Ledger:          s,
		MembershipRepo:  s,
		PermissionRepo:  s,
		OfficerRepo:     s,
	}
}

func pairKey(a, b string) string {
	return a + "|" + b
}

func reportKey(accountID string, date time.Time) string {
	return pairKey(accountID, domain.CalendarDate(date).Format("2006-01-02"))
}

// --- seeding ---

// PutAccount inserts or replaces an account.
func (s *Store) PutAccount(account domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if account.CurrencyCode == "" {
		account.CurrencyCode = domain.DefaultCurrency
	}
	account.TransactionCount = 0
	s.accounts[account.AccountID] = account
}

// PutMember records userID as a member of organizationID with role.
func (s *Store) PutMember(organizationID string, userID string, role domain.MemberRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[pairKey(organizationID, userID)] = role
}

// PutPermission sets the capability set of role in organizationID.
func (s *Store) PutPermission(perm domain.OrgPermission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permissions[pairKey(perm.OrganizationID, string(perm.Role))] = perm
}

// PutOfficer registers a bank officer at level.
func (s *Store) PutOfficer(officerID string, level domain.BankApprovalLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.officers[officerID] = level
}

// --- organization lookups ---

func (s *Store) FindMemberRole(_ context.Context, organizationID string, userID string) (domain.MemberRole, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.members[pairKey(organizationID, userID)]
	if !ok {
		return "", fmt.Errorf("membership for user %s in organization %s: %w", userID, organizationID, apperrors.ErrNotFound)
	}
	return role, nil
}

func (s *Store) FindPermission(_ context.Context, organizationID string, role domain.MemberRole) (*domain.OrgPermission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	perm, ok := s.permissions[pairKey(organizationID, string(role))]
	if !ok {
		return nil, fmt.Errorf("permission for role %s in organization %s: %w", role, organizationID, apperrors.ErrNotFound)
	}
	return &perm, nil
}

func (s *Store) FindOfficerLevel(_ context.Context, officerID string) (domain.BankApprovalLevel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	level, ok := s.officers[officerID]
	if !ok {
		return "", fmt.Errorf("officer %s: %w", officerID, apperrors.ErrNotFound)
	}
	return level, nil
}

// --- accounts ---

func (s *Store) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &account, nil
}

func (s *Store) ListActiveAccountsByOrganization(_ context.Context, organizationID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, txn := range s.transactions {
		counts[txn.AccountID]++
	}

	accounts := make([]domain.Account, 0)
	for _, account := range s.accounts {
		if account.OrganizationID != organizationID || !account.IsActive {
			continue
		}
		account.TransactionCount = counts[account.AccountID]
		accounts = append(accounts, account)
	}
	sortAccounts(accounts)
	return accounts, nil
}

func (s *Store) ListActiveAccounts(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		if account.IsActive {
			accounts = append(accounts, account)
		}
	}
	sortAccounts(accounts)
	return accounts, nil
}

func sortAccounts(accounts []domain.Account) {
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].AccountID < accounts[j].AccountID
		}
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
}

// --- transactions ---

func (s *Store) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.transactions[txn.TransactionID]; exists {
		return fmt.Errorf("transaction %s: %w", txn.TransactionID, apperrors.ErrDuplicate)
	}
	if _, ok := s.accounts[txn.AccountID]; !ok {
		return domain.ErrAccountNotFound
	}
	s.transactions[txn.TransactionID] = txn.Clone()
	return nil
}

func (s *Store) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txn, ok := s.transactions[transactionID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	out := txn.Clone()
	return &out, nil
}

func (s *Store) ListTransactions(_ context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Transaction, 0)
	for _, txn := range s.transactions {
		if txn.AccountID != filter.AccountID {
			continue
		}
		if filter.Status != nil && txn.Status != *filter.Status {
			continue
		}
		matched = append(matched, txn)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].TransactionID > matched[j].TransactionID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := min(filter.Offset, total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return cloneAll(matched[start:end]), total, nil
}

func (s *Store) ListOpenTransactions(_ context.Context, accountID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	open := make([]domain.Transaction, 0)
	for _, txn := range s.transactions {
		if txn.AccountID == accountID && txn.Status.IsOpen() {
			open = append(open, txn)
		}
	}
	sortOldestFirst(open)
	return cloneAll(open), nil
}

func (s *Store) FindTransactionsInWindow(_ context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	window := domain.DayWindow{Start: from, End: to}
	found := make([]domain.Transaction, 0)
	for _, txn := range s.transactions {
		if txn.AccountID == accountID && window.Contains(txn.ReportDate) {
			found = append(found, txn)
		}
	}
	sortOldestFirst(found)
	return cloneAll(found), nil
}

func (s *Store) FindTransactionsByReportID(_ context.Context, reportID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	found := make([]domain.Transaction, 0)
	for _, txn := range s.transactions {
		if txn.ReportID != nil && *txn.ReportID == reportID {
			found = append(found, txn)
		}
	}
	sortOldestFirst(found)
	return cloneAll(found), nil
}

func (s *Store) AppendSignature(_ context.Context, transactionID string, sig domain.ClientSignature, required int) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txn, ok := s.transactions[transactionID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	txn = txn.Clone()
	if err := txn.AddSignature(sig, required); err != nil {
		return nil, err
	}
	s.transactions[transactionID] = txn
	out := txn.Clone()
	return &out, nil
}

func (s *Store) RejectTransaction(_ context.Context, transactionID string, decision domain.BankDecision, now time.Time) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txn, ok := s.transactions[transactionID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	if txn.Status != domain.StatusClientApproved {
		return nil, domain.ErrTransactionRaceLost
	}
	txn = txn.Clone()
	txn.RecordDecision(decision, now)
	s.transactions[transactionID] = txn
	out := txn.Clone()
	return &out, nil
}

func (s *Store) CancelTransaction(_ context.Context, transactionID string, now time.Time) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txn, ok := s.transactions[transactionID]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	if !txn.Status.IsOpen() {
		return nil, domain.ErrTransactionRaceLost
	}
	txn = txn.Clone()
	txn.MarkCancelled(now)
	s.transactions[transactionID] = txn
	out := txn.Clone()
	return &out, nil
}

// ExecuteTransaction completes the transaction and moves the balance under
// the same lock, so no reader sees one without the other.
func (s *Store) ExecuteTransaction(_ context.Context, transactionID string, decision domain.BankDecision, now time.Time) (*domain.Transaction, *domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txn, ok := s.transactions[transactionID]
	if !ok {
		return nil, nil, domain.ErrTransactionNotFound
	}
	if txn.Status != domain.StatusClientApproved {
		return nil, nil, domain.ErrTransactionRaceLost
	}
	account, ok := s.accounts[txn.AccountID]
	if !ok {
		return nil, nil, domain.ErrAccountNotFound
	}

	balance, err := accounting.ApplyExecution(account, txn)
	if err != nil {
		return nil, nil, err
	}

	txn = txn.Clone()
	txn.RecordDecision(decision, now)
	account.Balance = balance
	account.LastUpdatedAt = now

	s.transactions[transactionID] = txn
	s.accounts[account.AccountID] = account

	out := txn.Clone()
	return &out, &account, nil
}

// --- reports ---

func (s *Store) FindReportByAccountAndDate(_ context.Context, accountID string, reportDate time.Time) (*domain.DailyReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.reportKeys[reportKey(accountID, reportDate)]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	report := s.reports[id]
	return &report, nil
}

func (s *Store) ListReports(_ context.Context, accountID string, limit int, offset int) ([]domain.DailyReport, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]domain.DailyReport, 0)
	for _, report := range s.reports {
		if report.AccountID == accountID {
			matched = append(matched, report)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ReportDate.After(matched[j].ReportDate)
	})

	total := len(matched)
	start := min(offset, total)
	end := total
	if limit > 0 {
		end = min(start+limit, total)
	}
	return matched[start:end], total, nil
}

func (s *Store) CreateReportAndLink(_ context.Context, report domain.DailyReport, transactionIDs []string, reportedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := reportKey(report.AccountID, report.ReportDate)
	if _, exists := s.reportKeys[key]; exists {
		return domain.ErrReportAlreadyExists
	}

	report.Transactions = nil
	s.reports[report.ReportID] = report
	s.reportKeys[key] = report.ReportID

	for _, id := range transactionIDs {
		txn, ok := s.transactions[id]
		if !ok || txn.ReportID != nil {
			continue
		}
		txn = txn.Clone()
		reportID := report.ReportID
		stamped := reportedAt
		txn.ReportID = &reportID
		txn.ReportedAt = &stamped
		s.transactions[id] = txn
	}
	return nil
}

func sortOldestFirst(txns []domain.Transaction) {
	sort.Slice(txns, func(i, j int) bool {
		if txns[i].CreatedAt.Equal(txns[j].CreatedAt) {
			return txns[i].TransactionID < txns[j].TransactionID
		}
		return txns[i].CreatedAt.Before(txns[j].CreatedAt)
	})
}

func cloneAll(txns []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(txns))
	for i := range txns {
		out[i] = txns[i].Clone()
	}
	return out
}
