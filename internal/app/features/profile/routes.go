// internal/app/features/profile/routes.go
package profile

import (
	"github.com/dalemusser/memberhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted at {api_prefix}/admin/profile.
//
// Both routes only check the token: a missing record is the handler's
// "Admin profile not found" on GET and a lazy create on PUT.
func Routes(h *Handler, authn *auth.Authenticator) chi.Router {
	r := chi.NewRouter()
	r.Use(authn.TokenOnly)
	r.Get("/", h.ServeProfile)
	r.Put("/", h.HandleUpdate)
	return r
}
