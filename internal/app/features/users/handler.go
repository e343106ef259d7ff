// internal/app/features/users/handler.go
package users

import (
	"net/http"

	uierrors "github.com/dalemusser/memberhub/internal/app/features/errors"
	userstore "github.com/dalemusser/memberhub/internal/app/store/users"
	"github.com/dalemusser/memberhub/internal/app/system/inputval"
	"github.com/dalemusser/memberhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the directory user endpoints. Any authenticated principal
// may use them; records are not owner-scoped.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Users    *userstore.Store
	Validate *inputval.Validator
}

func NewHandler(db *mongo.Database, v *inputval.Validator, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		Users:    userstore.New(db),
		Validate: v,
	}
}

const (
	msgNameRequired = "Name is required"
	msgIDTaken      = "User with this ID already exists"
	msgNotFound     = "User not found"
	msgDeleted      = "User deleted successfully"
	msgBadBody      = "Invalid request body"
)

// actorLabel is what createdBy/updatedBy record for p: the email resolved
// from the token, or the principal id when no email is known.
func actorLabel(p *models.Principal) string {
	if p.Email != "" {
		return p.Email
	}
	return p.ID
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.ErrLog.Respond(w, r, err)
}
