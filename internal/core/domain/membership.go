package domain

// MemberRole is a member's role inside an organization. Role names belong to
// the organization module; the engine treats them as opaque keys.
type MemberRole string

// OrgPermission is the capability set granted to a role in one organization.
type OrgPermission struct {
	OrganizationID    string     `json:"organizationID"`
	Role              MemberRole `json:"role"`
	CanManageTreasury bool       `json:"canManageTreasury"`
}
