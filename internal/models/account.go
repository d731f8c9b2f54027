package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors the account_type column values.
type AccountType string

const (
	Operating   AccountType = "OPERATING"
	Treasury    AccountType = "TREASURY"
	SharedVault AccountType = "SHARED_VAULT"
)

// Account is a row of org_bank_accounts.
type Account struct {
	AccountID                string          `db:"account_id"`
	OrganizationID           string          `db:"organization_id"`
	AccountName              string          `db:"account_name"`
	AccountNumber            string          `db:"account_number"`
	AccountType              AccountType     `db:"account_type"`
	Balance                  decimal.Decimal `db:"balance"`
	CurrencyCode             string          `db:"currency_code"`
	IsActive                 bool            `db:"is_active"`
	ClientSignaturesRequired int             `db:"client_signatures_required"`
	BankApprovalLevel        string          `db:"bank_approval_level"`
	AuditFields
	TransactionCount int `db:"transaction_count"` // listing queries only
}
