package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vtfinance/billing_dashboard/internal/billing/metrics"
	"github.com/vtfinance/billing_dashboard/internal/store"
)

type application struct {
	config  config
	store   store.Storage
	metrics *metrics.Engine
}

type config struct {
	addr string
	db   dbConfig
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello world!"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", app.handleGetDashboard)
			r.Route("/details", func(r chi.Router) {
				r.Get("/overdue", app.handleGetOverdueDetails)
				r.Get("/overdue/export", app.handleExportOverdueDetails)
				r.Get("/debtors", app.handleGetDebtorDetails)
			})
		})
		r.Route("/loads", func(r chi.Router) {
			r.Get("/history", app.handleGetLoadHistory)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	log.Printf("Server started on %s", app.config.addr)
	return srv.ListenAndServe()
}
