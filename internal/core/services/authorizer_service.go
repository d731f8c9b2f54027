package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/org_banking/internal/apperrors"
	"github.com/SscSPs/org_banking/internal/core/domain"
	portsrepo "github.com/SscSPs/org_banking/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/org_banking/internal/core/ports/services"
)

// orgAuthorizer resolves membership and capabilities through the
// organization module's lookups.
type orgAuthorizer struct {
	BaseService
	membership  portsrepo.MembershipLookup
	permissions portsrepo.PermissionLookup
}

// NewOrgAuthorizer creates the capability checker used by every service.
func NewOrgAuthorizer(membership portsrepo.MembershipLookup, permissions portsrepo.PermissionLookup, logger *slog.Logger) portssvc.OrgAuthorizerSvc {
	return &orgAuthorizer{
		BaseService: BaseService{Logger: logger},
		membership:  membership,
		permissions: permissions,
	}
}

var _ portssvc.OrgAuthorizerSvc = (*orgAuthorizer)(nil)

func (a *orgAuthorizer) AuthorizeMember(ctx context.Context, organizationID string, userID string) (domain.MemberRole, error) {
	role, err := a.membership.FindMemberRole(ctx, organizationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", domain.ErrNotMember
		}
		a.LogError(ctx, err, "Failed to look up organization membership",
			slog.String("organization_id", organizationID),
			slog.String("user_id", userID))
		return "", err
	}
	return role, nil
}

func (a *orgAuthorizer) CanManageTreasury(ctx context.Context, organizationID string, role domain.MemberRole) (bool, error) {
	perm, err := a.permissions.FindPermission(ctx, organizationID, role)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		a.LogError(ctx, err, "Failed to look up role permissions",
			slog.String("organization_id", organizationID),
			slog.String("role", string(role)))
		return false, err
	}
	return perm.CanManageTreasury, nil
}
