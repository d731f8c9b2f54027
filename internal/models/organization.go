package models

// OrgMember is a row of org_members.
type OrgMember struct {
	OrganizationID string `db:"organization_id"`
	UserID         string `db:"user_id"`
	Role           string `db:"role"`
}

// OrgRolePermission is a row of org_role_permissions.
type OrgRolePermission struct {
	OrganizationID    string `db:"organization_id"`
	Role              string `db:"role"`
	CanManageTreasury bool   `db:"can_manage_treasury"`
}

// BankOfficer is a row of bank_officers.
type BankOfficer struct {
	OfficerID     string `db:"officer_id"`
	ApprovalLevel string `db:"approval_level"`
}
