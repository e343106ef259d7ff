// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountfeature "github.com/dalemusser/memberhub/internal/app/features/account"
	dashboardfeature "github.com/dalemusser/memberhub/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/memberhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/memberhub/internal/app/features/health"
	profilefeature "github.com/dalemusser/memberhub/internal/app/features/profile"
	usersfeature "github.com/dalemusser/memberhub/internal/app/features/users"
	volunteersfeature "github.com/dalemusser/memberhub/internal/app/features/volunteers"
	"github.com/dalemusser/memberhub/internal/app/system/auth"
	"github.com/dalemusser/memberhub/internal/app/system/identity"
	"github.com/dalemusser/memberhub/internal/app/system/inputval"
	"github.com/dalemusser/memberhub/internal/app/system/limits"
	"github.com/dalemusser/memberhub/internal/app/system/metrics"
	"github.com/dalemusser/memberhub/internal/app/system/token"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// /health and /metrics are served at the root. Everything else lives under
// appCfg.APIPrefix:
//
//	/auth                    login, signup, me, logout
//	/admin/dashboard-stats   admin only
//	/admin/profile           admin only
//	/users                   any principal
//	/volunteers              policy-checked per operation
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := token.New([]byte(appCfg.JWTSecret))
	if err != nil {
		logger.Error("token service init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MemberHubMongoDatabase
	errLog := errorsfeature.NewErrorLogger(logger)
	authn := auth.NewAuthenticator(tokens, identity.New(db), logger)
	validator := inputval.New(inputval.Options{
		StrictPhone: appCfg.StrictPhone,
		PhoneRegion: appCfg.PhoneRegion,
	})

	var m *metrics.Metrics
	if appCfg.MetricsEnabled {
		m = metrics.New()
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: appCfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(m.Middleware)
	r.Use(limits.JSONBody)

	// Set before mounting so subrouters inherit them.
	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MemberHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	api := func(r chi.Router) {
		accountHandler := accountfeature.NewHandler(db, tokens, m, validator, errLog, logger)
		r.Mount("/auth", accountfeature.Routes(accountHandler, authn))

		dashboardHandler := dashboardfeature.NewHandler(db, errLog, logger)
		profileHandler := profilefeature.NewHandler(db, validator, errLog, logger)
		r.Route("/admin", func(r chi.Router) {
			r.With(authn.Middleware).Mount("/dashboard-stats", dashboardfeature.Routes(dashboardHandler))
			r.Mount("/profile", profilefeature.Routes(profileHandler, authn))
		})

		r.Group(func(r chi.Router) {
			r.Use(authn.Middleware)

			usersHandler := usersfeature.NewHandler(db, validator, errLog, logger)
			r.Mount("/users", usersfeature.Routes(usersHandler))

			volunteersHandler := volunteersfeature.NewHandler(db, validator, errLog, logger)
			r.Mount("/volunteers", volunteersfeature.Routes(volunteersHandler))
		})
	}

	if appCfg.APIPrefix == "" {
		api(r)
	} else {
		r.Route(appCfg.APIPrefix, api)
	}

	return r, nil
}
