package services

import (
	"context"

	"github.com/SscSPs/org_banking/internal/core/domain"
)

// OrgAuthorizerSvc answers membership and capability questions about an
// organization. It hides the role/permission schema from the engine.
type OrgAuthorizerSvc interface {
	// AuthorizeMember returns the caller's role, or domain.ErrNotMember.
	AuthorizeMember(ctx context.Context, organizationID string, userID string) (domain.MemberRole, error)

	// CanManageTreasury reports whether role carries the treasury capability.
	CanManageTreasury(ctx context.Context, organizationID string, role domain.MemberRole) (bool, error)
}
