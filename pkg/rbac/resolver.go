package rbac

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultCacheTTL bounds how long a cached permission set may be served.
const DefaultCacheTTL = 5 * time.Minute

// Resolver maps roles to permission sets with a TTL-bounded cache.
type Resolver struct {
	source GrantSource
	ttl    time.Duration
	now    func() time.Time

	mu       sync.RWMutex
	cache    map[string]map[string]struct{}
	oldestAt time.Time
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCacheTTL overrides the cache TTL.
func WithCacheTTL(ttl time.Duration) ResolverOption {
	return func(r *Resolver) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithResolverClock overrides the time source, for tests.
func WithResolverClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

// NewResolver creates a permission resolver over the given grant source.
func NewResolver(source GrantSource, opts ...ResolverOption) *Resolver {
	if source == nil {
		panic("rbac: grant source is required")
	}

	r := &Resolver{
		source: source,
		ttl:    DefaultCacheTTL,
		now:    time.Now,
		cache:  make(map[string]map[string]struct{}),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns the permission set for a role. Explicit grants from the
// source win; a role without them gets its default set; an unknown role
// gets the empty set. Admin is resolved to the full catalog without
// consulting the source.
func (r *Resolver) Resolve(ctx context.Context, role string) (map[string]struct{}, error) {
	if role == RoleAdmin {
		return codeSet(CatalogCodes()), nil
	}

	if cached, ok := r.fromCache(role); ok {
		return cached, nil
	}

	grants, err := r.source.Grants(ctx, role)
	if err != nil {
		return nil, errors.Join(ErrSourceFailure, err)
	}
	if len(grants) == 0 {
		grants = DefaultGrants(role)
	}

	set := codeSet(grants)
	r.store(role, set)

	// Hand out a copy so a concurrent repopulation can never expose a
	// partially-written set.
	return copySet(set), nil
}

// Check reports whether the role holds a permission. Admin always passes,
// even for codes added to the catalog after process start.
func (r *Resolver) Check(ctx context.Context, role, permission string) (bool, error) {
	if role == RoleAdmin {
		return true, nil
	}

	set, err := r.Resolve(ctx, role)
	if err != nil {
		return false, err
	}
	_, ok := set[permission]
	return ok, nil
}

// CheckAny reports whether the role holds at least one of the permissions.
func (r *Resolver) CheckAny(ctx context.Context, role string, permissions ...string) (bool, error) {
	if role == RoleAdmin {
		return true, nil
	}

	set, err := r.Resolve(ctx, role)
	if err != nil {
		return false, err
	}
	for _, p := range permissions {
		if _, ok := set[p]; ok {
			return true, nil
		}
	}
	return false, nil
}

// CheckAll reports whether the role holds every one of the permissions.
func (r *Resolver) CheckAll(ctx context.Context, role string, permissions ...string) (bool, error) {
	if role == RoleAdmin {
		return true, nil
	}

	set, err := r.Resolve(ctx, role)
	if err != nil {
		return false, err
	}
	for _, p := range permissions {
		if _, ok := set[p]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// Invalidate drops the whole cache, forcing fresh source reads. Called
// after administrative permission edits.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	r.cache = make(map[string]map[string]struct{})
	r.oldestAt = time.Time{}
	r.mu.Unlock()
}

// Seed writes the default grants for every baseline role that has no
// explicit grants yet. The source must implement GrantWriter.
func (r *Resolver) Seed(ctx context.Context) error {
	writer, ok := r.source.(GrantWriter)
	if !ok {
		return nil
	}

	for _, role := range DefaultRoles() {
		existing, err := r.source.Grants(ctx, role)
		if err != nil {
			return errors.Join(ErrSourceFailure, err)
		}
		if len(existing) > 0 {
			continue
		}
		if err := writer.SaveGrants(ctx, role, DefaultGrants(role)); err != nil {
			return errors.Join(ErrSourceFailure, err)
		}
	}

	r.Invalidate()
	return nil
}

// fromCache returns a cached set, clearing the whole cache first when any
// entry has outlived the TTL. Two goroutines may both miss and repopulate;
// that is harmless because population is idempotent and each caller gets
// its own copy.
func (r *Resolver) fromCache(role string) (map[string]struct{}, bool) {
	r.mu.RLock()
	stale := !r.oldestAt.IsZero() && r.now().Sub(r.oldestAt) > r.ttl
	set, ok := r.cache[role]
	r.mu.RUnlock()

	if stale {
		r.Invalidate()
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return copySet(set), true
}

func (r *Resolver) store(role string, set map[string]struct{}) {
	r.mu.Lock()
	if r.oldestAt.IsZero() || len(r.cache) == 0 {
		r.oldestAt = r.now()
	}
	r.cache[role] = set
	r.mu.Unlock()
}

func codeSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

func copySet(set map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(set))
	for k := range set {
		out[k] = struct{}{}
	}
	return out
}
