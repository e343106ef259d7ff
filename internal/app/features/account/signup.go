// internal/app/features/account/signup.go
package account

import (
	"context"
	"errors"
	"net/http"

	volunteerstore "github.com/dalemusser/memberhub/internal/app/store/volunteers"
	"github.com/dalemusser/memberhub/internal/app/system/apperr"
	"github.com/dalemusser/memberhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/memberhub/internal/app/system/inputval"
	"github.com/dalemusser/memberhub/internal/app/system/metrics"
	"github.com/dalemusser/memberhub/internal/app/system/normalize"
	"github.com/dalemusser/memberhub/internal/app/system/password"
	"github.com/dalemusser/memberhub/internal/app/system/respond"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"github.com/dalemusser/memberhub/internal/domain/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

// createdBySelf marks a volunteer who registered themselves.
const createdBySelf = "self"

type signupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	Name            string `json:"name"`
	DOB             string `json:"dob"`
	Mobile          string `json:"mobile"`
	WhatsApp        string `json:"whatsapp"`
	Address         string `json:"address"`
	MaritalStatus   string `json:"maritalStatus"`
	AnniversaryDate string `json:"anniversaryDate"`
}

func (req signupRequest) validate(v *inputval.Validator) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Email, inputval.Required, inputval.Email),
		validation.Field(&req.Password, inputval.Required),
		validation.Field(&req.Mobile, v.Phone()),
		validation.Field(&req.WhatsApp, v.Phone()),
	)
}

type signupResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	User    principalJSON `json:"user"`
}

// HandleSignup handles POST /auth/signup. New accounts are always volunteers.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := respond.DecodeJSON(r, &req, msgMissingCredentials); err != nil {
		h.Metrics.SignupAttempt(metrics.OutcomeInvalid)
		h.ErrLog.Respond(w, r, err)
		return
	}
	req.Email = normalize.Email(req.Email)
	if err := req.validate(h.Validate); err != nil {
		h.Metrics.SignupAttempt(metrics.OutcomeInvalid)
		h.ErrLog.Respond(w, r, apperr.ValidationError(inputval.Message(err, msgMissingCredentials)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, held, err := h.Identity.EmailHolder(ctx, req.Email)
	if err != nil {
		h.Metrics.SignupAttempt(metrics.OutcomeError)
		h.ErrLog.LogServerError(w, r, "signup email check failed", err)
		return
	}
	if held {
		h.Metrics.SignupAttempt(metrics.OutcomeConflict)
		h.ErrLog.Respond(w, r, apperr.ConflictError(msgEmailRegistered))
		return
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		h.Metrics.SignupAttempt(metrics.OutcomeError)
		h.ErrLog.LogServerError(w, r, "hash password failed", err)
		return
	}

	name := htmlsanitize.PlainText(normalize.Name(req.Name))
	if name == "" {
		name = normalize.LocalPart(req.Email)
	}

	vol, err := h.Volunteers.Create(ctx, models.Volunteer{
		Name:            name,
		Email:           req.Email,
		PasswordHash:    hash,
		DOB:             normalize.Text(req.DOB),
		Mobile:          normalize.Text(req.Mobile),
		WhatsApp:        normalize.Text(req.WhatsApp),
		Address:         htmlsanitize.PlainText(normalize.Text(req.Address)),
		MaritalStatus:   normalize.Text(req.MaritalStatus),
		AnniversaryDate: normalize.Text(req.AnniversaryDate),
		CreatedBy:       createdBySelf,
	})
	if errors.Is(err, volunteerstore.ErrDuplicateEmail) {
		// Lost a race with a concurrent signup for the same email.
		h.Metrics.SignupAttempt(metrics.OutcomeConflict)
		h.ErrLog.Respond(w, r, apperr.ConflictError(msgEmailRegistered))
		return
	}
	if err != nil {
		h.Metrics.SignupAttempt(metrics.OutcomeError)
		h.ErrLog.LogServerError(w, r, "create volunteer failed", err)
		return
	}

	tok, err := h.Tokens.Issue(vol.ID, models.RoleVolunteer)
	if err != nil {
		h.Metrics.SignupAttempt(metrics.OutcomeError)
		h.ErrLog.LogServerError(w, r, "issue token failed", err)
		return
	}

	h.Metrics.SignupAttempt(metrics.OutcomeSuccess)
	h.Log.Info("volunteer signed up", zap.String("uid", vol.ID))

	respond.JSON(w, http.StatusCreated, signupResponse{
		Message: msgSignupCreated,
		Token:   tok,
		User:    principalJSON{UID: vol.ID, Email: vol.Email, Role: models.RoleVolunteer.String()},
	})
}
