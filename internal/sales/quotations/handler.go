package quotations

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/chichermo/KaiZenith-sub001/internal/platform/httpx"
)

const dateLayout = "2006-01-02"

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateQuotationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	quotation, err := h.service.Create(r.Context(), req, actorID(r))
	if err != nil {
		h.respondError(w, err, "create quotation")
		return
	}
	httpx.JSON(w, http.StatusCreated, quotation)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	var req UpdateQuotationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}

	quotation, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.respondError(w, err, "update quotation")
		return
	}
	httpx.JSON(w, http.StatusOK, quotation)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	quotation, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "get quotation")
		return
	}
	httpx.JSON(w, http.StatusOK, quotation)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListQuotationsRequest{}
	if status := r.URL.Query().Get("status"); status != "" {
		s := QuotationStatus(status)
		req.Status = &s
	}
	req.DateFrom = parseDate(r.URL.Query().Get("date_from"))
	req.DateTo = parseDate(r.URL.Query().Get("date_to"))
	req.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	req.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	quotations, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, err, "list quotations")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"quotations": quotations,
		"total":      total,
	})
}

func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	calc, err := h.service.Preview(r.Context(), req)
	if err != nil {
		h.respondError(w, err, "preview quotation")
		return
	}
	httpx.JSON(w, http.StatusOK, calc)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	quotation, err := h.service.Submit(r.Context(), id, actorID(r))
	if err != nil {
		h.respondError(w, err, "submit quotation")
		return
	}
	httpx.JSON(w, http.StatusOK, quotation)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	quotation, err := h.service.Approve(r.Context(), id, actorID(r))
	if err != nil {
		h.respondError(w, err, "approve quotation")
		return
	}
	httpx.JSON(w, http.StatusOK, quotation)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason" validate:"required"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "reason is required")
		return
	}
	quotation, err := h.service.Reject(r.Context(), id, actorID(r), req.Reason)
	if err != nil {
		h.respondError(w, err, "reject quotation")
		return
	}
	httpx.JSON(w, http.StatusOK, quotation)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid quotation id")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, ErrInvalidLineItem), errors.Is(err, ErrInvalidDates):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Invalid Quotation", err.Error())
	case errors.Is(err, ErrInvalidStatus):
		httpx.Problem(w, http.StatusConflict, "Invalid Status", err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil
	}
	return &t
}

// actorID identifies the acting user from the X-User-ID header. Authentication
// is handled upstream of this service.
func actorID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
	return id
}
