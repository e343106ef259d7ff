// internal/app/features/users/create.go
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
	"github.com/dalemusser/memberhub/internal/domain/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

type createRequest struct {
	UID             string `json:"uid"`
	Name            string `json:"name"`
	DOB             string `json:"dob"`
	Mobile          string `json:"mobile"`
	WhatsApp        string `json:"whatsapp"`
	Address         string `json:"address"`
	MaritalStatus   string `json:"maritalStatus"`
	AnniversaryDate string `json:"anniversaryDate"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

func (req createRequest) validate(v *inputval.Validator) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, inputval.Required),
		validation.Field(&req.Mobile, v.Phone()),
		validation.Field(&req.WhatsApp, v.Phone()),
	)
}

// HandleCreate handles POST /users. A client uid is honoured when free.
// createdBy and updatedBy always name the caller.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, err := authz.Authorize(r, accesspolicy.OpUserCreate, "")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req createRequest
	if err := respond.DecodeJSON(r, &req, msgNameRequired); err != nil {
		h.fail(w, r, err)
		return
	}
	req.Name = htmlsanitize.PlainText(normalize.Name(req.Name))
	if err := req.validate(h.Validate); err != nil {
		h.fail(w, r, apperr.ValidationError(inputval.Message(err, msgNameRequired)))
		return
	}

	actor := actorLabel(p)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		ID:              normalize.Text(req.UID),
		Name:            req.Name,
		DOB:             normalize.Text(req.DOB),
		Mobile:          normalize.Text(req.Mobile),
		WhatsApp:        normalize.Text(req.WhatsApp),
		Address:         htmlsanitize.PlainText(normalize.Text(req.Address)),
		MaritalStatus:   normalize.Text(req.MaritalStatus),
		AnniversaryDate: normalize.Text(req.AnniversaryDate),
		CreatedAt:       normalize.Text(req.CreatedAt),
		UpdatedAt:       normalize.Text(req.UpdatedAt),
		CreatedBy:       actor,
		UpdatedBy:       actor,
	})
	if errors.Is(err, userstore.ErrDuplicateID) {
		h.fail(w, r, apperr.ConflictError(msgIDTaken))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create user failed", err)
		return
	}

	h.Log.Info("user created", zap.String("uid", u.ID), zap.String("by", p.ID))
	respond.JSON(w, http.StatusCreated, u)
}
