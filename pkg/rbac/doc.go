// Package rbac resolves roles to permission sets.
//
// The permission catalog is a closed set of resource:action codes. Grants
// come from a GrantSource (Postgres, YAML file or memory); a role with no
// explicit grants falls back to its hardcoded default set, and an unknown
// role resolves to the empty set. Authorization fails closed, it never
// errors on a bad role.
//
// The admin role is a deliberate escape hatch: checks for admin return true
// before any catalog or source lookup, so admin holds every permission
// including ones added after process start. That special case lives here
// and nowhere else.
//
// Resolved sets are cached per role for a fixed TTL. When any cached entry
// outlives the TTL the whole cache is dropped at once, and Invalidate
// forces the same after administrative grant edits.
package rbac
