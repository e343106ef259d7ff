// internal/app/features/account/routes.go
package account

import (
	"github.com/dalemusser/memberhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted under {api_prefix}/auth.
func Routes(h *Handler, authn *auth.Authenticator) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.HandleLogin)
	r.Post("/signup", h.HandleSignup)

	r.Group(func(r chi.Router) {
		r.Use(authn.Middleware)
		r.Get("/me", h.ServeMe)
		r.Post("/logout", h.HandleLogout)
	})
	return r
}
