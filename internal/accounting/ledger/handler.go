package ledger

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

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

type recordEntryRequest struct {
	Date           string          `json:"date" validate:"required"`
	Description    string          `json:"description" validate:"required"`
	Reference      *ReferenceInput `json:"reference,omitempty"`
	IdempotencyKey *uuid.UUID      `json:"idempotency_key,omitempty"`
	Movements      []MovementInput `json:"movements" validate:"required,min=2"`
}

func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordEntryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be formatted YYYY-MM-DD")
		return
	}

	entry, err := h.service.Record(r.Context(), RecordInput{
		Date:           date,
		Description:    req.Description,
		Reference:      req.Reference,
		IdempotencyKey: req.IdempotencyKey,
		Movements:      req.Movements,
		ActorID:        actorID(r),
	})
	if err != nil {
		h.respondError(w, err, "record entry")
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid entry id")
		return
	}
	entry, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "get entry")
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	entries, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		h.respondError(w, err, "list entries")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *Handler) Reverse(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid entry id")
		return
	}
	var req ReverseInput
	// Body is optional; an empty description picks the default reversal text.
	_ = httpx.DecodeJSON(r, &req)
	req.EntryID = id
	req.ActorID = actorID(r)
	reversal, err := h.service.Reverse(r.Context(), req)
	if err != nil {
		h.respondError(w, err, "reverse entry")
		return
	}
	httpx.JSON(w, http.StatusCreated, reversal)
}

// actorID identifies the acting user from the X-User-ID header. Authentication
// happens upstream; the gateway forwards the resolved user id.
func actorID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
	return id
}

func (h *Handler) respondError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, ErrUnbalanced):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Unbalanced Entry", err.Error())
	case errors.Is(err, ErrMalformedMovement), errors.Is(err, ErrTooFewMovements), errors.Is(err, ErrInvalidReference):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Invalid Entry", err.Error())
	case errors.Is(err, ErrDuplicateReference):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrEntryNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
