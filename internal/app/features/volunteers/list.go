// internal/app/features/volunteers/list.go
package volunteers

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/memberhub/internal/app/policy/accesspolicy"
	volunteerstore "github.com/dalemusser/memberhub/internal/app/store/volunteers"
	"github.com/dalemusser/memberhub/internal/app/system/apperr"
	"github.com/dalemusser/memberhub/internal/app/system/authz"
	"github.com/dalemusser/memberhub/internal/app/system/respond"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeList handles GET /volunteers (admin only).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if _, err := authz.Authorize(r, accesspolicy.OpVolunteerList, ""); err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Volunteers.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list volunteers failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

// ServeVolunteer handles GET /volunteers/{id}. The policy runs before the
// lookup, so a volunteer asking for another id gets 403 whether or not it
// exists.
func (h *Handler) ServeVolunteer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := authz.Authorize(r, accesspolicy.OpVolunteerRead, id); err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	v, err := h.Volunteers.GetByID(ctx, id)
	if errors.Is(err, volunteerstore.ErrNotFound) {
		h.ErrLog.Respond(w, r, apperr.NotFoundError(msgNotFound))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load volunteer failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, v)
}

// HandleDelete handles DELETE /volunteers/{id} (admin only).
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := authz.Authorize(r, accesspolicy.OpVolunteerDelete, id); err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Volunteers.Delete(ctx, id); err != nil {
		if errors.Is(err, volunteerstore.ErrNotFound) {
			h.ErrLog.Respond(w, r, apperr.NotFoundError(msgNotFound))
			return
		}
		h.ErrLog.LogServerError(w, r, "delete volunteer failed", err)
		return
	}
	respond.Message(w, http.StatusOK, msgDeleted)
}
