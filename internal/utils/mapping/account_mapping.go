package mapping

import (
	"github.com/SscSPs/org_banking/internal/core/domain"
	"github.com/SscSPs/org_banking/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:                d.AccountID,
		OrganizationID:           d.OrganizationID,
		AccountName:              d.AccountName,
		AccountNumber:            d.AccountNumber,
		AccountType:              models.AccountType(d.AccountType),
		Balance:                  d.Balance,
		CurrencyCode:             d.CurrencyCode,
		IsActive:                 d.IsActive,
		ClientSignaturesRequired: d.ClientSignaturesRequired,
		BankApprovalLevel:        string(d.BankApprovalLevel),
		AuditFields:              ToModelAuditFields(d.AuditFields),
		TransactionCount:         d.TransactionCount,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	currency := m.CurrencyCode
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return domain.Account{
		AccountID:                m.AccountID,
		OrganizationID:           m.OrganizationID,
		AccountName:              m.AccountName,
		AccountNumber:            m.AccountNumber,
		AccountType:              domain.AccountType(m.AccountType),
		Balance:                  m.Balance,
		CurrencyCode:             currency,
		IsActive:                 m.IsActive,
		ClientSignaturesRequired: m.ClientSignaturesRequired,
		BankApprovalLevel:        domain.BankApprovalLevel(m.BankApprovalLevel),
		TransactionCount:         m.TransactionCount,
		AuditFields:              ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
