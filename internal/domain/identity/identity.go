// Package identity carries the acting user through the engine. The engine
// treats it as opaque input for stamping approver/processor fields; it does
// not authenticate anyone — that is the caller's collaborator.
package identity

type Role string

const (
	RoleSuperadmin Role = "SUPERADMIN"
	RoleManager    Role = "MANAGER"
	RoleBorrower   Role = "BORROWER"
	RoleGuest      Role = "GUEST"
)

// Actor is the authenticated user as supplied by the identity collaborator.
type Actor struct {
	ID   string
	Role Role
}

// CanReview reports whether the actor's role may drive review decisions
// (approve/reject loans, process contributions). Status preconditions are
// still enforced by the state machines regardless of this check.
func (a Actor) CanReview() bool {
	return a.Role == RoleSuperadmin || a.Role == RoleManager
}
