// internal/app/features/volunteers/handler.go
package volunteers

import (
	uierrors "github.com/dalemusser/memberhub/internal/app/features/errors"
	volunteerstore "github.com/dalemusser/memberhub/internal/app/store/volunteers"
	"github.com/dalemusser/memberhub/internal/app/system/identity"
	"github.com/dalemusser/memberhub/internal/app/system/inputval"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves volunteer management. Admins manage every record;
// a volunteer may read and update only their own.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
	Volunteers *volunteerstore.Store
	Identity   *identity.Resolver
	Validate   *inputval.Validator
}

func NewHandler(db *mongo.Database, v *inputval.Validator, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		ErrLog:     errLog,
		Volunteers: volunteerstore.New(db),
		Identity:   identity.New(db),
		Validate:   v,
	}
}

const (
	msgNameEmailRequired = "Name and email are required"
	msgNameRequired      = "Name is required"
	msgEmailInUse        = "Email already in use"
	msgIDTaken           = "Volunteer with this ID already exists"
	msgNotFound          = "Volunteer not found"
	msgDeleted           = "Volunteer deleted successfully"
	msgBadBody           = "Invalid request body"
)
