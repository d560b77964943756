package payroll

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/calculate", h.Calculate)
	r.Get("/{id}", h.Get)
}
