// internal/app/features/account/login.go
package account

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/memberhub/internal/app/system/apperr"
	"github.com/dalemusser/memberhub/internal/app/system/identity"
	"github.com/dalemusser/memberhub/internal/app/system/inputval"
	"github.com/dalemusser/memberhub/internal/app/system/metrics"
	"github.com/dalemusser/memberhub/internal/app/system/normalize"
	"github.com/dalemusser/memberhub/internal/app/system/respond"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req loginRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Email, inputval.Required),
		validation.Field(&req.Password, inputval.Required),
	)
}

type loginResponse struct {
	Token string        `json:"token"`
	User  principalJSON `json:"user"`
}

// HandleLogin handles POST /auth/login.
//
// An unknown email and a wrong password both answer 401 with the same body.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.DecodeJSON(r, &req, msgMissingCredentials); err != nil {
		h.Metrics.LoginAttempt(metrics.OutcomeInvalid)
		h.ErrLog.Respond(w, r, err)
		return
	}
	req.Email = normalize.Email(req.Email)
	if err := req.Validate(); err != nil {
		h.Metrics.LoginAttempt(metrics.OutcomeInvalid)
		h.ErrLog.Respond(w, r, apperr.ValidationError(msgMissingCredentials))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Identity.Authenticate(ctx, req.Email, req.Password)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		h.Metrics.LoginAttempt(metrics.OutcomeInvalid)
		h.ErrLog.Respond(w, r, apperr.InvalidCredentialsError(msgInvalidCredentials))
		return
	}
	if err != nil {
		h.Metrics.LoginAttempt(metrics.OutcomeError)
		h.ErrLog.LogServerError(w, r, "login lookup failed", err)
		return
	}

	tok, err := h.Tokens.Issue(p.ID, p.Role)
	if err != nil {
		h.Metrics.LoginAttempt(metrics.OutcomeError)
		h.ErrLog.LogServerError(w, r, "issue token failed", err)
		return
	}

	h.Metrics.LoginAttempt(metrics.OutcomeSuccess)
	h.Log.Info("login",
		zap.String("uid", p.ID),
		zap.String("role", p.Role.String()))

	respond.JSON(w, http.StatusOK, loginResponse{
		Token: tok,
		User:  principalJSON{UID: p.ID, Email: p.Email, Role: p.Role.String()},
	})
}
