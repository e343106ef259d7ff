// internal/app/features/account/handler.go
package account

import (
	uierrors "github.com/dalemusser/memberhub/internal/app/features/errors"
	volunteerstore "github.com/dalemusser/memberhub/internal/app/store/volunteers"
	"github.com/dalemusser/memberhub/internal/app/system/identity"
	"github.com/dalemusser/memberhub/internal/app/system/inputval"
	"github.com/dalemusser/memberhub/internal/app/system/metrics"
	"github.com/dalemusser/memberhub/internal/app/system/token"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves login, signup and the token-holder endpoints.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	ErrLog     *uierrors.ErrorLogger
	Tokens     *token.Service
	Identity   *identity.Resolver
	Volunteers *volunteerstore.Store
	Metrics    *metrics.Metrics // nil disables counters
	Validate   *inputval.Validator
}

func NewHandler(
	db *mongo.Database,
	tokens *token.Service,
	m *metrics.Metrics,
	v *inputval.Validator,
	errLog *uierrors.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		ErrLog:     errLog,
		Tokens:     tokens,
		Identity:   identity.New(db),
		Volunteers: volunteerstore.New(db),
		Metrics:    m,
		Validate:   v,
	}
}

// Client-facing messages.
const (
	msgMissingCredentials = "Missing email or password"
	msgInvalidCredentials = "Invalid email or password"
	msgEmailRegistered    = "User already exists"
	msgSignupCreated      = "User created successfully"
	msgLoggedOut          = "Logged out successfully"
)

// principalJSON is the user summary returned by login, signup and me.
type principalJSON struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
