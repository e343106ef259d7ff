// internal/app/features/users/update.go
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/memberhub/internal/app/policy/accesspolicy"
	userstore "github.com/dalemusser/memberhub/internal/app/store/users"
	"github.com/dalemusser/memberhub/internal/app/system/apperr"
	"github.com/dalemusser/memberhub/internal/app/system/authz"
	"github.com/dalemusser/memberhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/memberhub/internal/app/system/inputval"
	"github.com/dalemusser/memberhub/internal/app/system/normalize"
	"github.com/dalemusser/memberhub/internal/app/system/respond"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"github.com/dalemusser/memberhub/internal/app/system/timestamp"
	"github.com/dalemusser/memberhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

func validatePatch(p *models.UserPatch, v *inputval.Validator) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Mobile, v.Phone()),
		validation.Field(&p.WhatsApp, v.Phone()),
	)
}

// HandleUpdate handles PUT /users/{id}. Absent fields are left alone.
// updatedAt is stamped when the client omits it; updatedBy always names
// the caller.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := authz.Authorize(r, accesspolicy.OpUserUpdate, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var patch models.UserPatch
	if err := respond.DecodeJSON(r, &patch, msgBadBody); err != nil {
		h.fail(w, r, err)
		return
	}
	if patch.Name != nil {
		patch.Name = htmlsanitize.PlainTextPtr(normalize.StringPtr(patch.Name, normalize.Name))
		if *patch.Name == "" {
			h.fail(w, r, apperr.ValidationError(msgNameRequired))
			return
		}
	}
	patch.Address = htmlsanitize.PlainTextPtr(patch.Address)
	if err := validatePatch(&patch, h.Validate); err != nil {
		h.fail(w, r, apperr.ValidationError(inputval.Message(err, msgBadBody)))
		return
	}
	if patch.UpdatedAt == nil {
		now := timestamp.Now()
		patch.UpdatedAt = &now
	}
	by := actorLabel(p)
	patch.UpdatedBy = &by

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Update(ctx, id, patch)
	if errors.Is(err, userstore.ErrNotFound) {
		h.fail(w, r, apperr.NotFoundError(msgNotFound))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update user failed", err)
		return
	}

	h.Log.Debug("user updated", zap.String("uid", id), zap.String("by", p.ID))
	respond.JSON(w, http.StatusOK, u)
}

// HandleDelete handles DELETE /users/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := authz.Authorize(r, accesspolicy.OpUserDelete, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			h.fail(w, r, apperr.NotFoundError(msgNotFound))
			return
		}
		h.ErrLog.LogServerError(w, r, "delete user failed", err)
		return
	}

	h.Log.Info("user deleted", zap.String("uid", id), zap.String("by", p.ID))
	respond.Message(w, http.StatusOK, msgDeleted)
}
