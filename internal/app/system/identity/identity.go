// Package identity resolves credentials and token claims to principals
// across the admins and volunteers collections.
package identity

import (
	"context"
	"errors"

	adminstore "github.com/dalemusser/memberhub/internal/app/store/admins"
	volunteerstore "github.com/dalemusser/memberhub/internal/app/store/volunteers"
	"github.com/dalemusser/memberhub/internal/app/system/auth"
	"github.com/dalemusser/memberhub/internal/app/system/password"
	"github.com/dalemusser/memberhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrInvalidCredentials covers both an unknown email and a wrong secret.
var ErrInvalidCredentials = errors.New("identity: invalid email or password")

// Resolver looks principals up in both login-capable collections.
type Resolver struct {
	Admins     *adminstore.Store
	Volunteers *volunteerstore.Store
}

// New builds a Resolver over db.
func New(db *mongo.Database) *Resolver {
	return &Resolver{
		Admins:     adminstore.New(db),
		Volunteers: volunteerstore.New(db),
	}
}

// Authenticate checks email and secret against admins first, then
// volunteers. When neither collection has the email a dummy bcrypt
// comparison runs so the miss costs the same as a wrong secret.
func (r *Resolver) Authenticate(ctx context.Context, email, secret string) (*models.Principal, error) {
	compared := false

	a, err := r.Admins.GetByEmail(ctx, email)
	switch {
	case err == nil:
		compared = true
		if password.Verify(a.PasswordHash, secret) {
			return &models.Principal{ID: a.ID, Role: models.RoleAdmin, Email: a.Email}, nil
		}
	case !errors.Is(err, adminstore.ErrNotFound):
		return nil, err
	}

	v, err := r.Volunteers.GetByEmail(ctx, email)
	switch {
	case err == nil:
		compared = true
		if password.Verify(v.PasswordHash, secret) {
			return &models.Principal{ID: v.ID, Role: models.RoleVolunteer, Email: v.Email}, nil
		}
	case !errors.Is(err, volunteerstore.ErrNotFound):
		return nil, err
	}

	if !compared {
		password.VerifyDummy(secret)
	}
	return nil, ErrInvalidCredentials
}

// EmailHolder reports which role, if any, already uses email.
func (r *Resolver) EmailHolder(ctx context.Context, email string) (models.Role, bool, error) {
	if _, err := r.Admins.GetByEmail(ctx, email); err == nil {
		return models.RoleAdmin, true, nil
	} else if !errors.Is(err, adminstore.ErrNotFound) {
		return "", false, err
	}
	if _, err := r.Volunteers.GetByEmail(ctx, email); err == nil {
		return models.RoleVolunteer, true, nil
	} else if !errors.Is(err, volunteerstore.ErrNotFound) {
		return "", false, err
	}
	return "", false, nil
}

// LoadPrincipal implements auth.PrincipalLoader. A missing record yields
// auth.ErrPrincipalNotFound.
func (r *Resolver) LoadPrincipal(ctx context.Context, id string, role models.Role) (*models.Principal, error) {
	switch role {
	case models.RoleAdmin:
		a, err := r.Admins.GetByID(ctx, id)
		if errors.Is(err, adminstore.ErrNotFound) {
			return nil, auth.ErrPrincipalNotFound
		}
		if err != nil {
			return nil, err
		}
		return &models.Principal{ID: a.ID, Role: models.RoleAdmin, Email: a.Email}, nil

	case models.RoleVolunteer:
		v, err := r.Volunteers.GetByID(ctx, id)
		if errors.Is(err, volunteerstore.ErrNotFound) {
			return nil, auth.ErrPrincipalNotFound
		}
		if err != nil {
			return nil, err
		}
		return &models.Principal{ID: v.ID, Role: models.RoleVolunteer, Email: v.Email}, nil
	}
	return nil, auth.ErrPrincipalNotFound
}

var _ auth.PrincipalLoader = (*Resolver)(nil)
