// internal/app/features/profile/profile.go
package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/memberhub/internal/app/policy/accesspolicy"
	adminstore "github.com/dalemusser/memberhub/internal/app/store/admins"
	"github.com/dalemusser/memberhub/internal/app/system/apperr"
	"github.com/dalemusser/memberhub/internal/app/system/authz"
	"github.com/dalemusser/memberhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/memberhub/internal/app/system/inputval"
	"github.com/dalemusser/memberhub/internal/app/system/normalize"
	"github.com/dalemusser/memberhub/internal/app/system/respond"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"github.com/dalemusser/memberhub/internal/domain/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

// ServeProfile returns the calling admin's own record.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	p, err := authz.Authorize(r, accesspolicy.OpAdminProfileRead, "")
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Admins.GetByID(ctx, p.ID)
	if errors.Is(err, adminstore.ErrNotFound) {
		h.ErrLog.Respond(w, r, apperr.NotFoundError(msgNotFound))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load admin profile failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, a)
}

func validatePatch(p *models.AdminPatch, v *inputval.Validator) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Mobile, v.Phone()),
		validation.Field(&p.WhatsApp, v.Phone()),
	)
}

// HandleUpdate applies a partial update to the calling admin's record,
// creating it with placeholder name and email when it does not exist.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	p, err := authz.Authorize(r, accesspolicy.OpAdminProfileUpdate, "")
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	var patch models.AdminPatch
	if err := respond.DecodeJSON(r, &patch, msgBadBody); err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}
	if patch.Name != nil {
		patch.Name = htmlsanitize.PlainTextPtr(normalize.StringPtr(patch.Name, normalize.Name))
		if *patch.Name == "" {
			h.ErrLog.Respond(w, r, apperr.ValidationError(msgNameRequired))
			return
		}
	}
	patch.Address = htmlsanitize.PlainTextPtr(patch.Address)
	if err := validatePatch(&patch, h.Validate); err != nil {
		h.ErrLog.Respond(w, r, apperr.ValidationError(inputval.Message(err, msgBadBody)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// A lazy create takes the placeholder email, which must not collide
	// with a volunteer. Admin collisions surface from the unique index.
	if _, err := h.Admins.GetByID(ctx, p.ID); errors.Is(err, adminstore.ErrNotFound) {
		_, held, err := h.Identity.EmailHolder(ctx, models.PlaceholderAdminEmail)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "placeholder email check failed", err)
			return
		}
		if held {
			h.ErrLog.Respond(w, r, apperr.ConflictError(msgPlaceholderInUse))
			return
		}
		h.Log.Info("creating missing admin profile", zap.String("uid", p.ID))
	} else if err != nil {
		h.ErrLog.LogServerError(w, r, "load admin profile failed", err)
		return
	}

	a, err := h.Admins.UpdateProfile(ctx, p.ID, patch)
	if errors.Is(err, adminstore.ErrDuplicateEmail) {
		h.ErrLog.Respond(w, r, apperr.ConflictError(msgPlaceholderInUse))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update admin profile failed", err)
		return
	}
	respond.JSON(w, http.StatusOK, a)
}
