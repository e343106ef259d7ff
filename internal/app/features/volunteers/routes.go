// internal/app/features/volunteers/routes.go
package volunteers

import "github.com/go-chi/chi/v5"

// Routes is mounted under {api_prefix}/volunteers behind the bearer middleware.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.ServeVolunteer)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
