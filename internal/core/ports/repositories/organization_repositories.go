package repositories

import (
	"context"

	"github.com/SscSPs/org_banking/internal/core/domain"
)

// MembershipLookup answers whether a user belongs to an organization.
type MembershipLookup interface {
	// FindMemberRole returns the user's role, or an apperrors.ErrNotFound error
	// when the user is not a member.
	FindMemberRole(ctx context.Context, organizationID string, userID string) (domain.MemberRole, error)
}

// PermissionLookup resolves the capabilities a role carries in an organization.
type PermissionLookup interface {
	// FindPermission returns the role's permission set, or apperrors.ErrNotFound
	// when the role has none configured.
	FindPermission(ctx context.Context, organizationID string, role domain.MemberRole) (*domain.OrgPermission, error)
}

// OfficerLookup resolves a bank officer's seniority tier.
type OfficerLookup interface {
	// FindOfficerLevel returns apperrors.ErrNotFound for unknown officers.
	FindOfficerLevel(ctx context.Context, officerID string) (domain.BankApprovalLevel, error)
}
