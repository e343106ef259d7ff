// internal/app/features/account/me.go
package account

import (
	"net/http"

	"github.com/dalemusser/memberhub/internal/app/system/apperr"
	"github.com/dalemusser/memberhub/internal/app/system/auth"
	"github.com/dalemusser/memberhub/internal/app/system/respond"
	"go.uber.org/zap"
)

// ServeMe handles GET /auth/me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.CurrentPrincipal(r)
	if !ok {
		h.ErrLog.Respond(w, r, apperr.UnauthenticatedError(auth.MsgUnauthenticated))
		return
	}
	respond.JSON(w, http.StatusOK, principalJSON{UID: p.ID, Email: p.Email, Role: p.Role.String()})
}

// HandleLogout handles POST /auth/logout. Tokens are stateless, so the
// client simply discards its token.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if p, ok := auth.CurrentPrincipal(r); ok {
		h.Log.Info("logout", zap.String("uid", p.ID), zap.String("role", p.Role.String()))
	}
	respond.Message(w, http.StatusOK, msgLoggedOut)
}
