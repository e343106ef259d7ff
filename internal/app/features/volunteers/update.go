// internal/app/features/volunteers/update.go
package volunteers

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/memberhub/internal/app/policy/accesspolicy"
	volunteerstore "github.com/dalemusser/memberhub/internal/app/store/volunteers"
	"github.com/dalemusser/memberhub/internal/app/system/apperr"
	"github.com/dalemusser/memberhub/internal/app/system/authz"
	"github.com/dalemusser/memberhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/memberhub/internal/app/system/inputval"
	"github.com/dalemusser/memberhub/internal/app/system/normalize"
	"github.com/dalemusser/memberhub/internal/app/system/password"
	"github.com/dalemusser/memberhub/internal/app/system/respond"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"github.com/dalemusser/memberhub/internal/app/system/timestamp"
	"github.com/dalemusser/memberhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

func validatePatch(p *models.VolunteerPatch, v *inputval.Validator) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Email, inputval.Email),
		validation.Field(&p.Mobile, v.Phone()),
		validation.Field(&p.WhatsApp, v.Phone()),
	)
}

// HandleUpdate handles PUT /volunteers/{id} for the owner or an admin.
//
// email is honoured only for admins and is checked against both volunteers
// and admins; from anyone else it is ignored. A non-empty password is
// re-hashed. updatedAt is stamped when omitted.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := authz.Authorize(r, accesspolicy.OpVolunteerUpdate, id)
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	var patch models.VolunteerPatch
	if err := respond.DecodeJSON(r, &patch, msgBadBody); err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	if !accesspolicy.Decide(p, accesspolicy.OpVolunteerEmailChange, id).Allowed() {
		if patch.Email != nil {
			h.Log.Debug("ignoring email change from non-admin", zap.String("uid", id))
		}
		patch.Email = nil
	}
	patch.Email = normalize.StringPtr(patch.Email, normalize.Email)
	if patch.Name != nil {
		patch.Name = htmlsanitize.PlainTextPtr(normalize.StringPtr(patch.Name, normalize.Name))
		if *patch.Name == "" {
			h.ErrLog.Respond(w, r, apperr.ValidationError(msgNameRequired))
			return
		}
	}
	patch.Address = htmlsanitize.PlainTextPtr(patch.Address)
	if patch.Email != nil && *patch.Email == "" {
		h.ErrLog.Respond(w, r, apperr.ValidationError(msgNameEmailRequired))
		return
	}
	if err := validatePatch(&patch, h.Validate); err != nil {
		h.ErrLog.Respond(w, r, apperr.ValidationError(inputval.Message(err, msgBadBody)))
		return
	}
	if patch.UpdatedAt == nil {
		now := timestamp.Now()
		patch.UpdatedAt = &now
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	current, err := h.Volunteers.GetByID(ctx, id)
	if errors.Is(err, volunteerstore.ErrNotFound) {
		h.ErrLog.Respond(w, r, apperr.NotFoundError(msgNotFound))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load volunteer failed", err)
		return
	}

	upd := volunteerstore.Update{Patch: patch}

	if patch.Email != nil && *patch.Email != current.Email {
		_, held, err := h.Identity.EmailHolder(ctx, *patch.Email)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "volunteer email check failed", err)
			return
		}
		if held {
			h.ErrLog.Respond(w, r, apperr.ConflictError(msgEmailInUse))
			return
		}
		upd.Email = patch.Email
	}

	if patch.Password != nil && *patch.Password != "" {
		hash, err := password.Hash(*patch.Password)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "hash password failed", err)
			return
		}
		upd.PasswordHash = &hash
	}

	v, err := h.Volunteers.Update(ctx, id, upd)
	switch {
	case errors.Is(err, volunteerstore.ErrNotFound):
		h.ErrLog.Respond(w, r, apperr.NotFoundError(msgNotFound))
		return
	case errors.Is(err, volunteerstore.ErrDuplicateEmail):
		h.ErrLog.Respond(w, r, apperr.ConflictError(msgEmailInUse))
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "update volunteer failed", err)
		return
	}

	h.Log.Debug("volunteer updated", zap.String("uid", id), zap.String("by", p.ID))
	respond.JSON(w, http.StatusOK, v)
}
