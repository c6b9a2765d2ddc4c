package auth

// Identity is the resolved, trusted representation of the caller for one
// request. It is built once by ResolveIdentity and passed explicitly; a nil
// *Identity means anonymous.
type Identity struct {
	UserID  uint
	Email   string
	IsAdmin bool
}

// Capability is the access level a route requires.
type Capability string

const (
	CapabilityAuthenticated Capability = "authenticated"
	CapabilityAdmin         Capability = "admin"
)

// Decision is the outcome of an authorization check. DenyUnauthenticated
// and DenyForbidden map to 401 and 403 at the HTTP boundary and must not
// be conflated.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

// Authorize decides whether ident satisfies the required capability.
// Pure function; an unknown capability denies.
func Authorize(ident *Identity, required Capability) Decision {
	if ident == nil {
		return DenyUnauthenticated
	}
	switch required {
	case CapabilityAuthenticated:
		return Allow
	case CapabilityAdmin:
		if ident.IsAdmin {
			return Allow
		}
		return DenyForbidden
	default:
		return DenyForbidden
	}
}
