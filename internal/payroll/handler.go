package payroll

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/chichermo/KaiZenith-sub001/internal/platform/httpx"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	calc, err := h.service.Calculate(r.Context(), in)
	if err != nil {
		h.respondError(w, err, "calculate payroll")
		return
	}
	httpx.JSON(w, http.StatusOK, calc)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePayslipRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	createdBy, _ := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
	payslip, err := h.service.Create(r.Context(), req, createdBy)
	if err != nil {
		h.respondError(w, err, "create payslip")
		return
	}
	httpx.JSON(w, http.StatusCreated, payslip)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid payslip id")
		return
	}
	payslip, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "get payslip")
		return
	}
	httpx.JSON(w, http.StatusOK, payslip)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListPayslipsRequest{}
	if year := r.URL.Query().Get("year"); year != "" {
		if v, err := strconv.Atoi(year); err == nil {
			req.PeriodYear = &v
		}
	}
	if month := r.URL.Query().Get("month"); month != "" {
		if v, err := strconv.Atoi(month); err == nil {
			req.PeriodMonth = &v
		}
	}
	req.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	req.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	payslips, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, err, "list payslips")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"payslips": payslips,
		"total":    total,
	})
}

func (h *Handler) respondError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, ErrInvalidPayrollInput):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Invalid Payroll Input", err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
