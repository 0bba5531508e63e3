package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fairsplit/fairsplit/docs"
	"github.com/fairsplit/fairsplit/internal/expense"
	"github.com/fairsplit/fairsplit/internal/group"
	"github.com/fairsplit/fairsplit/internal/settlement"
	mw "github.com/fairsplit/fairsplit/pkg/middleware"
)

// Handlers bundles the feature handlers served under /api
type Handlers struct {
	Groups      *group.Handler
	Expenses    *expense.Handler
	Settlements *settlement.Handler
}

// NewRouter builds the HTTP router
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.RequestLogger)
	r.Use(mw.Metrics)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/groups", func(r chi.Router) {
		r.Post("/", h.Groups.Create)
		r.Get("/", h.Groups.List)

		r.Route("/{groupId}", func(r chi.Router) {
			r.Get("/", h.Groups.GetByID)
			r.Delete("/", h.Groups.Delete)

			r.Mount("/expenses", h.Expenses.Routes())
			r.Mount("/settlements", h.Settlements.Routes())
		})
	})

	return r
}
