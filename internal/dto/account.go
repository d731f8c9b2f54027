package dto

import (
	"time"

	"github.com/SscSPs/org_banking/internal/core/domain"
	"github.com/SscSPs/org_banking/internal/utils"
	"github.com/shopspring/decimal"
)

// AccountResponse defines the data returned for an organization bank account.
type AccountResponse struct {
	AccountID                string                   `json:"accountId"`
	OrganizationID           string                   `json:"organizationId"`
	AccountName              string                   `json:"accountName"`
	AccountNumber            string                   `json:"accountNumber"`
	AccountType              domain.AccountType       `json:"accountType"`
	Balance                  decimal.Decimal          `json:"balance" swaggertype:"string"`
	BalanceDisplay           string                   `json:"balanceDisplay"`
	Currency                 string                   `json:"currency"`
	IsActive                 bool                     `json:"isActive"`
	ClientSignaturesRequired int                      `json:"clientSignaturesRequired"`
	BankApprovalLevel        domain.BankApprovalLevel `json:"bankApprovalLevel"`
	TransactionCount         int                      `json:"transactionCount"`
	CreatedAt                time.Time                `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:                acc.AccountID,
		OrganizationID:           acc.OrganizationID,
		AccountName:              acc.AccountName,
		AccountNumber:            acc.AccountNumber,
		AccountType:              acc.AccountType,
		Balance:                  acc.Balance,
		BalanceDisplay:           utils.FormatAmount(acc.Balance, acc.CurrencyCode),
		Currency:                 acc.CurrencyCode,
		IsActive:                 acc.IsActive,
		ClientSignaturesRequired: acc.RequiredSignatures(),
		BankApprovalLevel:        acc.BankApprovalLevel,
		TransactionCount:         acc.TransactionCount,
		CreatedAt:                acc.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
