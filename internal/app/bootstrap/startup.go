// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	adminstore "github.com/dalemusser/memberhub/internal/app/store/admins"
	"github.com/dalemusser/memberhub/internal/app/system/identity"
	"github.com/dalemusser/memberhub/internal/app/system/password"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"github.com/dalemusser/memberhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
	})
	cur := timeouts.Current()
	logger.Info("store timeouts configured",
		zap.Duration("short", cur.Short),
		zap.Duration("medium", cur.Medium))

	if appCfg.BootstrapAdminEmail != "" {
		if err := ensureBootstrapAdmin(ctx, deps, appCfg, logger); err != nil {
			logger.Error("bootstrap admin setup failed", zap.Error(err))
			return err
		}
	}
	return nil
}

// ensureBootstrapAdmin creates the configured admin unless the email is
// already in use. An existing admin keeps its password; one without a
// password gets the configured one. An email held by a volunteer aborts
// startup.
func ensureBootstrapAdmin(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	email := appCfg.BootstrapAdminEmail
	res := identity.New(deps.MemberHubMongoDatabase)

	role, held, err := res.EmailHolder(ctx, email)
	if err != nil {
		return fmt.Errorf("check bootstrap admin email: %w", err)
	}
	if held {
		if role == models.RoleAdmin {
			return ensureBootstrapPassword(ctx, res.Admins, appCfg, logger)
		}
		return fmt.Errorf("bootstrap admin email %q is already used by a %s", email, role)
	}

	hash, err := password.Hash(appCfg.BootstrapAdminPassword)
	if err != nil {
		return fmt.Errorf("hash bootstrap admin password: %w", err)
	}

	name := appCfg.BootstrapAdminName
	if name == "" {
		name = models.PlaceholderAdminName
	}

	a, err := res.Admins.Create(ctx, models.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if errors.Is(err, adminstore.ErrDuplicateEmail) {
		// Lost a race with another instance starting up.
		logger.Info("bootstrap admin already exists", zap.String("email", email))
		return nil
	}
	if err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	logger.Info("bootstrap admin created", zap.String("uid", a.ID), zap.String("email", email))
	return nil
}

func ensureBootstrapPassword(ctx context.Context, admins *adminstore.Store, appCfg AppConfig, logger *zap.Logger) error {
	a, err := admins.GetByEmail(ctx, appCfg.BootstrapAdminEmail)
	if err != nil {
		return fmt.Errorf("load bootstrap admin: %w", err)
	}
	if a.PasswordHash != "" {
		logger.Info("bootstrap admin already exists", zap.String("email", a.Email))
		return nil
	}

	hash, err := password.Hash(appCfg.BootstrapAdminPassword)
	if err != nil {
		return fmt.Errorf("hash bootstrap admin password: %w", err)
	}
	if err := admins.SetPasswordHash(ctx, a.ID, hash); err != nil {
		return fmt.Errorf("set bootstrap admin password: %w", err)
	}
	logger.Info("bootstrap admin password set", zap.String("uid", a.ID))
	return nil
}
