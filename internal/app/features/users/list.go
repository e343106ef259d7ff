// internal/app/features/users/list.go
package users

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/memberhub/internal/app/policy/accesspolicy"
	userstore "github.com/dalemusser/memberhub/internal/app/store/users"
	"github.com/dalemusser/memberhub/internal/app/system/apperr"
	"github.com/dalemusser/memberhub/internal/app/system/authz"
	"github.com/dalemusser/memberhub/internal/app/system/respond"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeList handles GET /users. The optional q parameter filters by name,
// ignoring case.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if _, err := authz.Authorize(r, accesspolicy.OpUserList, ""); err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Users.List(ctx, strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list users failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

// ServeUser handles GET /users/{id}.
func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := authz.Authorize(r, accesspolicy.OpUserRead, id); err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, userstore.ErrNotFound) {
		h.fail(w, r, apperr.NotFoundError(msgNotFound))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load user failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, u)
}
