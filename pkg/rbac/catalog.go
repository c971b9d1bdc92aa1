package rbac

// Permission is a stable resource:action code with display metadata.
type Permission struct {
	Code        string
	Resource    string
	Action      string
	Description string
}

// Permission codes, grouped by resource category.
const (
	PermUsersRead         = "users:read"
	PermUsersWrite        = "users:write"
	PermUsersDelete       = "users:delete"
	PermSessionsRead      = "sessions:read"
	PermSessionsWrite     = "sessions:write"
	PermSessionsDelete    = "sessions:delete"
	PermConfigRead        = "config:read"
	PermConfigWrite       = "config:write"
	PermContentRead       = "content:read"
	PermContentWrite      = "content:write"
	PermContentDelete     = "content:delete"
	PermAnalyticsRead     = "analytics:read"
	PermAIRead            = "ai:read"
	PermAIWrite           = "ai:write"
	PermAuditRead         = "audit:read"
	PermIntegrationsRead  = "integrations:read"
	PermIntegrationsWrite = "integrations:write"
	PermPaymentsRead      = "payments:read"
	PermPaymentsWrite     = "payments:write"
)

// Catalog is the closed set of permissions the platform knows about.
var Catalog = []Permission{
	{PermUsersRead, "users", "read", "View user accounts"},
	{PermUsersWrite, "users", "write", "Create and edit user accounts"},
	{PermUsersDelete, "users", "delete", "Deactivate and remove user accounts"},
	{PermSessionsRead, "sessions", "read", "View training sessions"},
	{PermSessionsWrite, "sessions", "write", "Create and edit training sessions"},
	{PermSessionsDelete, "sessions", "delete", "Remove training sessions"},
	{PermConfigRead, "config", "read", "View platform configuration"},
	{PermConfigWrite, "config", "write", "Change platform configuration"},
	{PermContentRead, "content", "read", "View training content"},
	{PermContentWrite, "content", "write", "Create and edit training content"},
	{PermContentDelete, "content", "delete", "Remove training content"},
	{PermAnalyticsRead, "analytics", "read", "View analytics dashboards"},
	{PermAIRead, "ai", "read", "Use AI evaluation features"},
	{PermAIWrite, "ai", "write", "Configure AI evaluation prompts"},
	{PermAuditRead, "audit", "read", "View the audit log"},
	{PermIntegrationsRead, "integrations", "read", "View integrations"},
	{PermIntegrationsWrite, "integrations", "write", "Configure integrations"},
	{PermPaymentsRead, "payments", "read", "View billing"},
	{PermPaymentsWrite, "payments", "write", "Manage billing"},
}

// CatalogCodes returns the codes of every catalog permission.
func CatalogCodes() []string {
	codes := make([]string, len(Catalog))
	for i, p := range Catalog {
		codes[i] = p.Code
	}
	return codes
}

// IsKnownPermission reports whether a code is part of the catalog.
func IsKnownPermission(code string) bool {
	for _, p := range Catalog {
		if p.Code == code {
			return true
		}
	}
	return false
}
