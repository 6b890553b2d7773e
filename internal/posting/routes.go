package posting

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/templates", h.List)
	r.Get("/templates/{code}", h.Get)
	r.Post("/templates/{code}/validate", h.Validate)
	r.Post("/events/{trigger}", h.Event)
}
