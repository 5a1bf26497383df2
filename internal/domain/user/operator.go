// Package user provides domain entities for dashboard operators and the
// capability set consumed by the eligibility engine and workflow.
package user

// Role identifies the operator's access level within a tenant.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// Capabilities is the boolean capability view the engine consumes. It is
// derived from the operator's token claims; the engine never evaluates
// permissions itself.
type Capabilities struct {
	CanForceDelete  bool `json:"canForceDelete"`
	CanEditMetadata bool `json:"canEditMetadata"`
}

// Operator represents an authenticated dashboard operator.
type Operator struct {
	ID           string       `json:"id"`
	TenantID     string       `json:"tenantId"`
	Email        string       `json:"email"`
	Role         Role         `json:"role"`
	Capabilities Capabilities `json:"capabilities"`
}

// CapabilitiesForRole maps a role to its default capability set. Admins may
// permanently delete; both roles may edit metadata.
func CapabilitiesForRole(role Role) Capabilities {
	return Capabilities{
		CanForceDelete:  role == RoleAdmin,
		CanEditMetadata: role == RoleAdmin || role == RoleEditor,
	}
}
