// Package accesspolicy decides whether a principal may perform an operation.
//
// Authorization rules:
//   - Signup and login are open to everyone
//   - Volunteers may read and update their own volunteer record
//   - Admins may list, create, read, update and delete any volunteer
//   - Only admins may change a volunteer's email
//   - Admins manage their own admin profile; the id comes from the token
//   - Dashboard stats are admin only
//   - Any authenticated principal may list, read, create, update and delete
//     directory users; records are not owner-scoped
//
// Decide performs no I/O. Callers resolve the principal and the target
// owner id first and act on the returned Decision.
package accesspolicy

import "github.com/dalemusser/memberhub/internal/domain/models"

// Operation names a protected action.
type Operation int

const (
	OpSignup Operation = iota + 1
	OpLogin

	OpVolunteerList
	OpVolunteerCreate
	OpVolunteerRead
	OpVolunteerUpdate
	OpVolunteerDelete
	OpVolunteerEmailChange

	OpAdminProfileRead
	OpAdminProfileUpdate
	OpDashboardStats

	OpUserList
	OpUserRead
	OpUserCreate
	OpUserUpdate
	OpUserDelete
)

var opNames = map[Operation]string{
	OpSignup:               "signup",
	OpLogin:                "login",
	OpVolunteerList:        "volunteer.list",
	OpVolunteerCreate:      "volunteer.create",
	OpVolunteerRead:        "volunteer.read",
	OpVolunteerUpdate:      "volunteer.update",
	OpVolunteerDelete:      "volunteer.delete",
	OpVolunteerEmailChange: "volunteer.email_change",
	OpAdminProfileRead:     "admin.profile.read",
	OpAdminProfileUpdate:   "admin.profile.update",
	OpDashboardStats:       "admin.dashboard_stats",
	OpUserList:             "user.list",
	OpUserRead:             "user.read",
	OpUserCreate:           "user.create",
	OpUserUpdate:           "user.update",
	OpUserDelete:           "user.delete",
}

func (op Operation) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "unknown"
}

// Decision is the outcome of Decide.
type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

// Allowed reports whether d is Allow.
func (d Decision) Allowed() bool { return bool(d) }

// Decide applies the rules above. ownerID is the id of the targeted record
// where ownership matters and is ignored otherwise. A nil principal is
// denied everything except signup and login. Unknown operations are denied.
func Decide(p *models.Principal, op Operation, ownerID string) Decision {
	switch op {
	case OpSignup, OpLogin:
		return Allow
	}

	if p == nil || p.ID == "" || !p.Role.Valid() {
		return Deny
	}

	switch op {
	case OpVolunteerRead, OpVolunteerUpdate:
		if p.IsAdmin() {
			return Allow
		}
		return Decision(p.IsVolunteer() && ownerID != "" && p.ID == ownerID)

	case OpVolunteerList, OpVolunteerCreate, OpVolunteerDelete, OpVolunteerEmailChange:
		return Decision(p.IsAdmin())

	case OpAdminProfileRead, OpAdminProfileUpdate:
		// The profile is always the caller's own; ownerID is the principal id.
		return Decision(p.IsAdmin() && (ownerID == "" || ownerID == p.ID))

	case OpDashboardStats:
		return Decision(p.IsAdmin())

	case OpUserList, OpUserRead, OpUserCreate, OpUserUpdate, OpUserDelete:
		// Directory data is shared; there is no ownership check.
		return Allow
	}

	return Deny
}
