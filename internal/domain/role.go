package domain

const RoleAdmin = "ADMIN"

// OrderScope selects which orders listing a session should request.
type OrderScope string

const (
	// OrderScopeAll lists every order; admin view.
	OrderScopeAll OrderScope = "all"
	// OrderScopeClient lists only orders whose clientId matches the
	// session subject.
	OrderScopeClient OrderScope = "client"
)

// RolePolicy is the derived, stateless view of a session's roles. It is
// recomputed from the roles on every resolution and never cached apart
// from the session itself.
type RolePolicy struct {
	IsAdmin          bool
	CanManageCatalog bool
	CanOrder         bool
}

// ResolveRolePolicy maps a role set to its permissions. Administrators
// manage the catalog and browse all orders; everyone else composes and
// submits orders. The split is exclusive: a session carrying ADMIN never
// orders, regardless of what other roles it carries. A session with no
// roles at all gets the customer view with ordering disabled (read-only).
func ResolveRolePolicy(roles []string) RolePolicy {
	isAdmin := false
	for _, role := range roles {
		if role == RoleAdmin {
			isAdmin = true
			break
		}
	}

	return RolePolicy{
		IsAdmin:          isAdmin,
		CanManageCatalog: isAdmin,
		CanOrder:         !isAdmin && len(roles) > 0,
	}
}

// OrderScope returns the listing mode the policy entitles the caller to.
func (p RolePolicy) OrderScope() OrderScope {
	if p.IsAdmin {
		return OrderScopeAll
	}
	return OrderScopeClient
}
