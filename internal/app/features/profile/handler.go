// internal/app/features/profile/handler.go
package profile

import (
	uierrors "github.com/dalemusser/memberhub/internal/app/features/errors"
	adminstore "github.com/dalemusser/memberhub/internal/app/store/admins"
	"github.com/dalemusser/memberhub/internal/app/system/identity"
	"github.com/dalemusser/memberhub/internal/app/system/inputval"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the admin profile endpoints.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Admins   *adminstore.Store
	Identity *identity.Resolver
	Validate *inputval.Validator
}

// NewHandler constructs a Handler bound to the given Mongo database and logger.
func NewHandler(db *mongo.Database, v *inputval.Validator, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		Admins:   adminstore.New(db),
		Identity: identity.New(db),
		Validate: v,
	}
}

const (
	msgNotFound         = "Admin profile not found"
	msgPlaceholderInUse = "Email already in use"
	msgNameRequired     = "Name is required"
	msgBadBody          = "Invalid request body"
)
