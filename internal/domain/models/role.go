// internal/domain/models/role.go
package models

// Role identifies which kind of principal a record belongs to. It is derived
// from the collection a record was loaded from and is never stored.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleVolunteer Role = "volunteer"
)

// Valid reports whether r is one of the principal roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleVolunteer
}

func (r Role) String() string { return string(r) }

// Principal is an authenticated actor resolved from a bearer token.
type Principal struct {
	ID    string
	Role  Role
	Email string
}

// IsAdmin reports whether the principal acts with admin rights.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// IsVolunteer reports whether the principal is a volunteer.
func (p *Principal) IsVolunteer() bool {
	return p != nil && p.Role == RoleVolunteer
}
