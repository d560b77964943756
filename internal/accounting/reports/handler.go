package reports

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/chichermo/KaiZenith-sub001/internal/platform/httpx"
)

const dateLayout = "2006-01-02"

type Handler struct {
	logger  *slog.Logger
	service *Service
	now     func() time.Time
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, now: time.Now}
}

func (h *Handler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	asOf, err := h.asOf(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	tb, err := h.service.TrialBalance(r.Context(), asOf)
	if err != nil {
		h.respondError(w, err, "trial balance")
		return
	}
	if !tb.IsBalanced {
		h.logger.Warn("trial balance out of balance",
			slog.String("as_of", asOf.Format(dateLayout)),
			slog.String("total_debit", tb.TotalDebit.StringFixed(2)),
			slog.String("total_credit", tb.TotalCredit.StringFixed(2)))
	}
	httpx.JSON(w, http.StatusOK, tb)
}

func (h *Handler) TrialBalanceCSV(w http.ResponseWriter, r *http.Request) {
	asOf, err := h.asOf(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	tb, err := h.service.TrialBalance(r.Context(), asOf)
	if err != nil {
		h.respondError(w, err, "trial balance csv")
		return
	}
	stamp := asOf.Format(dateLayout)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="balance_comprobacion_%s.csv"`, stamp))
	if err := WriteTrialBalanceCSV(w, tb, stamp); err != nil {
		h.logger.Error("write trial balance csv", slog.Any("error", err))
	}
}

func (h *Handler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	from, err := h.date(r, "from")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	to, err := h.date(r, "to")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	is, err := h.service.IncomeStatement(r.Context(), from, to)
	if err != nil {
		h.respondError(w, err, "income statement")
		return
	}
	httpx.JSON(w, http.StatusOK, is)
}

func (h *Handler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, err := h.asOf(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	bs, err := h.service.BalanceSheet(r.Context(), asOf)
	if err != nil {
		h.respondError(w, err, "balance sheet")
		return
	}
	if !bs.IsBalanced {
		h.logger.Warn("balance sheet identity violated",
			slog.String("as_of", asOf.Format(dateLayout)),
			slog.String("total_assets", bs.TotalAssets.StringFixed(2)))
	}
	httpx.JSON(w, http.StatusOK, bs)
}

// asOf parses the as_of query parameter, defaulting to today.
func (h *Handler) asOf(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return h.now(), nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("as_of must be formatted YYYY-MM-DD")
	}
	return parsed, nil
}

func (h *Handler) date(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is required", name)
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be formatted YYYY-MM-DD", name)
	}
	return parsed, nil
}

func (h *Handler) respondError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, ErrInvalidRange) {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	h.logger.Error(op, slog.Any("error", err))
	httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
}
