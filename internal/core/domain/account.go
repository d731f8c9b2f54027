package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies an organization bank account.
type AccountType string

const (
	Operating   AccountType = "OPERATING"
	Treasury    AccountType = "TREASURY"
	SharedVault AccountType = "SHARED_VAULT"
)

// DefaultCurrency is the currency assigned to accounts provisioned without one.
const DefaultCurrency = "ALTAN"

// Account is an organization bank account. It is provisioned elsewhere;
// the engine reads it and only BalanceExecutor changes Balance.
type Account struct {
	AccountID                string            `json:"accountID"`
	OrganizationID           string            `json:"organizationID"`
	AccountName              string            `json:"accountName"`
	AccountNumber            string            `json:"accountNumber"`
	AccountType              AccountType       `json:"accountType"`
	Balance                  decimal.Decimal   `json:"balance"`
	CurrencyCode             string            `json:"currencyCode"`
	IsActive                 bool              `json:"isActive"`
	ClientSignaturesRequired int               `json:"clientSignaturesRequired"`
	BankApprovalLevel        BankApprovalLevel `json:"bankApprovalLevel"`
	TransactionCount         int               `json:"transactionCount"` // populated by listings only
	AuditFields
}

// RequiredSignatures returns the quorum threshold, never below one.
func (a Account) RequiredSignatures() int {
	if a.ClientSignaturesRequired < 1 {
		return 1
	}
	return a.ClientSignaturesRequired
}

// CheckCanInitiate validates draft and, for debits, that the account can
// cover it. Credits are not balance-checked.
func (a Account) CheckCanInitiate(draft TransactionDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	return a.CheckFunds(draft.Type, draft.Amount)
}

// CheckFunds reports ErrInsufficientFunds when a debit would overdraw the account.
func (a Account) CheckFunds(txType TransactionType, amount decimal.Decimal) error {
	if txType.IsDebit() && amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}
	return nil
}
