package coa

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chichermo/KaiZenith-sub001/internal/platform/httpx"
)

type Handler struct {
	chart Chart
}

func NewHandler(chart Chart) *Handler {
	return &Handler{chart: chart}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{"accounts": h.chart.Accounts()})
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
}
