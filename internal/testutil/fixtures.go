package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/memberhub/internal/app/system/password"
	"github.com/dalemusser/memberhub/internal/app/system/timestamp"
	"github.com/dalemusser/memberhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) hash(secret string) string {
	f.t.Helper()
	if secret == "" {
		return ""
	}
	h, err := password.Hash(secret)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}
	return h
}

// CreateUser inserts a directory user with the given name.
func (f *Fixtures) CreateUser(ctx context.Context, name string) models.User {
	f.t.Helper()

	now := timestamp.Now()
	u := models.User{
		ID:            uuid.NewString(),
		Name:          name,
		NameCI:        text.Fold(name),
		MaritalStatus: models.DefaultMaritalStatus,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     "admin",
		UpdatedBy:     "admin",
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateUserUpdatedAt inserts a directory user with an explicit updatedAt.
func (f *Fixtures) CreateUserUpdatedAt(ctx context.Context, name, updatedAt string) models.User {
	f.t.Helper()

	u := models.User{
		ID:            uuid.NewString(),
		Name:          name,
		NameCI:        text.Fold(name),
		MaritalStatus: models.DefaultMaritalStatus,
		CreatedAt:     updatedAt,
		UpdatedAt:     updatedAt,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateVolunteer inserts a volunteer. An empty secret leaves the
// volunteer without a password.
func (f *Fixtures) CreateVolunteer(ctx context.Context, name, email, secret string) models.Volunteer {
	f.t.Helper()
	return f.CreateVolunteerAt(ctx, name, email, secret, timestamp.Format(time.Now()))
}

// CreateVolunteerAt inserts a volunteer with an explicit createdAt value,
// which is stored verbatim.
func (f *Fixtures) CreateVolunteerAt(ctx context.Context, name, email, secret, createdAt string) models.Volunteer {
	f.t.Helper()

	v := models.Volunteer{
		ID:            uuid.NewString(),
		Name:          name,
		Email:         email,
		PasswordHash:  f.hash(secret),
		MaritalStatus: models.DefaultMaritalStatus,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
		CreatedBy:     "admin",
	}
	if _, err := f.db.Collection("volunteers").InsertOne(ctx, v); err != nil {
		f.t.Fatalf("failed to create test volunteer: %v", err)
	}
	return v
}

// CreateAdmin inserts an admin with a password.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email, secret string) models.Admin {
	f.t.Helper()

	a := models.Admin{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: f.hash(secret),
		UpdatedAt:    timestamp.Now(),
	}
	if _, err := f.db.Collection("admins").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test admin: %v", err)
	}
	return a
}
