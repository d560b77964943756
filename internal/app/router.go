package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/chichermo/KaiZenith-sub001/internal/accounting/coa"
	"github.com/chichermo/KaiZenith-sub001/internal/accounting/ledger"
	"github.com/chichermo/KaiZenith-sub001/internal/accounting/reports"
	"github.com/chichermo/KaiZenith-sub001/internal/observability"
	"github.com/chichermo/KaiZenith-sub001/internal/payroll"
	"github.com/chichermo/KaiZenith-sub001/internal/sales/quotations"
	"github.com/chichermo/KaiZenith-sub001/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	ChartHandler      *coa.Handler
	LedgerHandler     *ledger.Handler
	ReportsHandler    *reports.Handler
	QuotationsHandler *quotations.Handler
	PayrollHandler    *payroll.Handler
	JobHandler        *jobs.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with KaiZenith defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/accounting", func(acct chi.Router) {
		if params.ChartHandler != nil {
			acct.Route("/accounts", params.ChartHandler.MountRoutes)
		}
		if params.LedgerHandler != nil {
			acct.Route("/ledger", params.LedgerHandler.MountRoutes)
		}
		if params.ReportsHandler != nil {
			acct.Route("/reports", params.ReportsHandler.MountRoutes)
		}
	})
	if params.QuotationsHandler != nil {
		r.Route("/sales/quotations", params.QuotationsHandler.MountRoutes)
	}
	if params.PayrollHandler != nil {
		r.Route("/payroll", params.PayrollHandler.MountRoutes)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	return r
}
