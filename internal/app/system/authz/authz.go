// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/memberhub/internal/app/policy/accesspolicy"
	"github.com/dalemusser/memberhub/internal/app/system/apperr"
	"github.com/dalemusser/memberhub/internal/app/system/auth"
	"github.com/dalemusser/memberhub/internal/domain/models"
)

// MsgForbidden is the body message for a policy denial.
const MsgForbidden = "Unauthorized"

// Principal returns the request's principal, or nil and false when the
// request is unauthenticated.
func Principal(r *http.Request) (*models.Principal, bool) {
	return auth.CurrentPrincipal(r)
}

// IsAdmin reports whether the current request's principal is an admin.
func IsAdmin(r *http.Request) bool {
	p, _ := auth.CurrentPrincipal(r)
	return p.IsAdmin()
}

// IsVolunteer reports whether the current request's principal is a volunteer.
func IsVolunteer(r *http.Request) bool {
	p, _ := auth.CurrentPrincipal(r)
	return p.IsVolunteer()
}

// Authorize runs the access policy for op against the request's principal.
// ownerID is the id of the targeted record where ownership matters.
//
// It returns the principal on Allow. Otherwise the error is an apperr
// Unauthenticated (no principal) or Forbidden value ready to respond with.
func Authorize(r *http.Request, op accesspolicy.Operation, ownerID string) (*models.Principal, error) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		return nil, apperr.UnauthenticatedError(auth.MsgUnauthenticated)
	}
	if !accesspolicy.Decide(p, op, ownerID).Allowed() {
		return nil, apperr.ForbiddenError(MsgForbidden)
	}
	return p, nil
}

// Require returns middleware that runs Authorize for an operation that
// does not depend on a target record.
func Require(op accesspolicy.Operation, onDeny func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := Authorize(r, op, ""); err != nil {
				onDeny(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
