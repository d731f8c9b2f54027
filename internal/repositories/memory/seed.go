package memory

import (
	"fmt"
	"time"

	"github.com/SscSPs/org_banking/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Seed is the fixture format accepted by LoadSeedFile (yaml, json or toml).
type Seed struct {
	Accounts    []SeedAccount    `mapstructure:"accounts"`
	Members     []SeedMember     `mapstructure:"members"`
	Permissions []SeedPermission `mapstructure:"permissions"`
	Officers    []SeedOfficer    `mapstructure:"officers"`
}

// SeedAccount describes one provisioned account.
type SeedAccount struct {
	ID                       string `mapstructure:"id"`
	OrganizationID           string `mapstructure:"organization_id"`
	Name                     string `mapstructure:"name"`
	Number                   string `mapstructure:"number"`
	Type                     string `mapstructure:"type"`
	Balance                  string `mapstructure:"balance"`
	Currency                 string `mapstructure:"currency"`
	Inactive                 bool   `mapstructure:"inactive"`
	ClientSignaturesRequired int    `mapstructure:"client_signatures_required"`
	BankApprovalLevel        string `mapstructure:"bank_approval_level"`
}

// SeedMember places a user in an organization.
type SeedMember struct {
	OrganizationID string `mapstructure:"organization_id"`
	UserID         string `mapstructure:"user_id"`
	Role           string `mapstructure:"role"`
}

// SeedPermission grants capabilities to a role.
type SeedPermission struct {
	OrganizationID    string `mapstructure:"organization_id"`
	Role              string `mapstructure:"role"`
	CanManageTreasury bool   `mapstructure:"can_manage_treasury"`
}

// SeedOfficer registers a bank officer.
type SeedOfficer struct {
	ID    string `mapstructure:"id"`
	Level string `mapstructure:"level"`
}

// LoadSeedFile reads a fixture file and applies it to store.
func LoadSeedFile(store *Store, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	var seed Seed
	if err := v.Unmarshal(&seed); err != nil {
		return fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return ApplySeed(store, seed, time.Now().UTC())
}

// ApplySeed loads seed into store. Accounts are stamped with now, one
// microsecond apart so listing order follows the file.
func ApplySeed(store *Store, seed Seed, now time.Time) error {
	for i, a := range seed.Accounts {
		balance := decimal.Zero
		if a.Balance != "" {
			parsed, err := decimal.NewFromString(a.Balance)
			if err != nil {
				return fmt.Errorf("account %s: invalid balance %q: %w", a.ID, a.Balance, err)
			}
			balance = parsed
		}
		level := domain.BankApprovalLevel(a.BankApprovalLevel)
		if level == "" {
			level = domain.LevelManager
		}
		if !level.IsValid() {
			return fmt.Errorf("account %s: unknown bank approval level %q", a.ID, a.BankApprovalLevel)
		}
		accountType := domain.AccountType(a.Type)
		if accountType == "" {
			accountType = domain.Operating
		}
		created := now.Add(time.Duration(i) * time.Microsecond)
		store.PutAccount(domain.Account{
			AccountID:                a.ID,
			OrganizationID:           a.OrganizationID,
			AccountName:              a.Name,
			AccountNumber:            a.Number,
			AccountType:              accountType,
			Balance:                  balance,
			CurrencyCode:             a.Currency,
			IsActive:                 !a.Inactive,
			ClientSignaturesRequired: a.ClientSignaturesRequired,
			BankApprovalLevel:        level,
			AuditFields:              domain.AuditFields{CreatedAt: created, LastUpdatedAt: created},
		})
	}
	for _, m := range seed.Members {
		store.PutMember(m.OrganizationID, m.UserID, domain.MemberRole(m.Role))
	}
	for _, p := range seed.Permissions {
		store.PutPermission(domain.OrgPermission{
			OrganizationID:    p.OrganizationID,
			Role:              domain.MemberRole(p.Role),
			CanManageTreasury: p.CanManageTreasury,
		})
	}
	for _, o := range seed.Officers {
		level := domain.BankApprovalLevel(o.Level)
		if !level.IsValid() {
			return fmt.Errorf("officer %s: unknown level %q", o.ID, o.Level)
		}
		store.PutOfficer(o.ID, level)
	}
	return nil
}
