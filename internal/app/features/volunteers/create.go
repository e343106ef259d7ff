// internal/app/features/volunteers/create.go
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
	"github.com/dalemusser/memberhub/internal/domain/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

type createRequest struct {
	UID             string `json:"uid"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	DOB             string `json:"dob"`
	Mobile          string `json:"mobile"`
	WhatsApp        string `json:"whatsapp"`
	Address         string `json:"address"`
	MaritalStatus   string `json:"maritalStatus"`
	AnniversaryDate string `json:"anniversaryDate"`
	CreatedBy       string `json:"createdBy"`
}

func (req createRequest) validate(v *inputval.Validator) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, inputval.Required),
		validation.Field(&req.Email, inputval.Required, inputval.Email),
		validation.Field(&req.Mobile, v.Phone()),
		validation.Field(&req.WhatsApp, v.Phone()),
	)
}

// HandleCreate handles POST /volunteers (admin only). Without a password
// the volunteer cannot log in until one is set.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, err := authz.Authorize(r, accesspolicy.OpVolunteerCreate, "")
	if err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}

	var req createRequest
	if err := respond.DecodeJSON(r, &req, msgNameEmailRequired); err != nil {
		h.ErrLog.Respond(w, r, err)
		return
	}
	req.Name = htmlsanitize.PlainText(normalize.Name(req.Name))
	req.Email = normalize.Email(req.Email)
	if err := req.validate(h.Validate); err != nil {
		h.ErrLog.Respond(w, r, apperr.ValidationError(inputval.Message(err, msgNameEmailRequired)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, held, err := h.Identity.EmailHolder(ctx, req.Email); err != nil {
		h.ErrLog.LogServerError(w, r, "volunteer email check failed", err)
		return
	} else if held {
		h.ErrLog.Respond(w, r, apperr.ConflictError(msgEmailInUse))
		return
	}

	var hash string
	if req.Password != "" {
		if hash, err = password.Hash(req.Password); err != nil {
			h.ErrLog.LogServerError(w, r, "hash password failed", err)
			return
		}
	}

	v, err := h.Volunteers.Create(ctx, models.Volunteer{
		ID:              normalize.Text(req.UID),
		Name:            req.Name,
		Email:           req.Email,
		PasswordHash:    hash,
		DOB:             normalize.Text(req.DOB),
		Mobile:          normalize.Text(req.Mobile),
		WhatsApp:        normalize.Text(req.WhatsApp),
		Address:         htmlsanitize.PlainText(normalize.Text(req.Address)),
		MaritalStatus:   normalize.Text(req.MaritalStatus),
		AnniversaryDate: normalize.Text(req.AnniversaryDate),
		CreatedBy:       normalize.Text(req.CreatedBy),
	})
	switch {
	case errors.Is(err, volunteerstore.ErrDuplicateEmail):
		h.ErrLog.Respond(w, r, apperr.ConflictError(msgEmailInUse))
		return
	case errors.Is(err, volunteerstore.ErrDuplicateID):
		h.ErrLog.Respond(w, r, apperr.ConflictError(msgIDTaken))
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "create volunteer failed", err)
		return
	}

	h.Log.Info("volunteer created", zap.String("uid", v.ID), zap.String("by", p.ID))
	respond.JSON(w, http.StatusCreated, v)
}
