package rbac

// Role names with baseline grants.
const (
	RoleUser           = "user"
	RoleContentManager = "content_manager"
	RoleAnalyst        = "analyst"
	RoleAdmin          = "admin"
)

// defaultGrants maps each baseline role to its permission set, applied when
// no explicit grants exist in durable storage. RoleAdmin is intentionally
// absent: admin bypasses resolution entirely.
var defaultGrants = map[string][]string{
	RoleUser: {
		PermSessionsRead,
		PermContentRead,
		PermAIRead,
	},
	RoleContentManager: {
		PermSessionsRead,
		PermContentRead,
		PermContentWrite,
		PermAIRead,
	},
	RoleAnalyst: {
		PermSessionsRead,
		PermContentRead,
		PermAnalyticsRead,
		PermAuditRead,
	},
}

// DefaultGrants returns a copy of the baseline permission set for a role,
// or nil for roles without one.
func DefaultGrants(role string) []string {
	grants, ok := defaultGrants[role]
	if !ok {
		return nil
	}
	out := make([]string, len(grants))
	copy(out, grants)
	return out
}

// DefaultRoles returns the role names that carry baseline grants.
func DefaultRoles() []string {
	return []string{RoleUser, RoleContentManager, RoleAnalyst}
}
