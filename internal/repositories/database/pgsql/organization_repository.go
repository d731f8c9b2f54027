package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/org_banking/internal/apperrors"
	"github.com/SscSPs/org_banking/internal/core/domain"
	portsrepo "github.com/SscSPs/org_banking/internal/core/ports/repositories"
	"github.com/SscSPs/org_banking/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxOrganizationRepository reads the membership, role permission and bank
// officer tables owned by neighbouring modules.
type PgxOrganizationRepository struct {
	BaseRepository
}

func newPgxOrganizationRepository(pool *pgxpool.Pool) *PgxOrganizationRepository {
	return &PgxOrganizationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.MembershipLookup = (*PgxOrganizationRepository)(nil)
	_ portsrepo.PermissionLookup = (*PgxOrganizationRepository)(nil)
	_ portsrepo.OfficerLookup    = (*PgxOrganizationRepository)(nil)
)

// FindMemberRole returns the user's role in the organization.
func (r *PgxOrganizationRepository) FindMemberRole(ctx context.Context, organizationID string, userID string) (domain.MemberRole, error) {
	var m models.OrgMember
	err := r.Pool.QueryRow(ctx, `
		SELECT organization_id, user_id, role
		FROM org_members
		WHERE organization_id = $1 AND user_id = $2;
	`, organizationID, userID).Scan(&m.OrganizationID, &m.UserID, &m.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("membership for user %s in organization %s: %w", userID, organizationID, apperrors.ErrNotFound)
		}
		return "", fmt.Errorf("failed to find membership for user %s: %w", userID, err)
	}
	return domain.MemberRole(m.Role), nil
}

// FindPermission returns the permission set configured for a role.
func (r *PgxOrganizationRepository) FindPermission(ctx context.Context, organizationID string, role domain.MemberRole) (*domain.OrgPermission, error) {
	var m models.OrgRolePermission
	err := r.Pool.QueryRow(ctx, `
		SELECT organization_id, role, can_manage_treasury
		FROM org_role_permissions
		WHERE organization_id = $1 AND role = $2;
	`, organizationID, string(role)).Scan(&m.OrganizationID, &m.Role, &m.CanManageTreasury)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("permission for role %s in organization %s: %w", role, organizationID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find permission for role %s: %w", role, err)
	}
	return &domain.OrgPermission{
		OrganizationID:    m.OrganizationID,
		Role:              domain.MemberRole(m.Role),
		CanManageTreasury: m.CanManageTreasury,
	}, nil
}

// FindOfficerLevel returns the officer's seniority tier.
func (r *PgxOrganizationRepository) FindOfficerLevel(ctx context.Context, officerID string) (domain.BankApprovalLevel, error) {
	var m models.BankOfficer
	err := r.Pool.QueryRow(ctx, `
		SELECT officer_id, approval_level
		FROM bank_officers
		WHERE officer_id = $1;
	`, officerID).Scan(&m.OfficerID, &m.ApprovalLevel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("officer %s: %w", officerID, apperrors.ErrNotFound)
		}
		return "", fmt.Errorf("failed to find officer %s: %w", officerID, err)
	}
	return domain.BankApprovalLevel(m.ApprovalLevel), nil
}
