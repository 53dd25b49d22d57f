package controller

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/vireolabs/ticketcheck/internal/check"
	"github.com/vireolabs/ticketcheck/internal/client/catalog"
	"github.com/vireolabs/ticketcheck/internal/config"
	"github.com/vireolabs/ticketcheck/internal/enrich"
	customMW "github.com/vireolabs/ticketcheck/internal/middleware"
	"github.com/vireolabs/ticketcheck/internal/observability"
)

type RouterDeps struct {
	Runner     *check.Runner
	Builder    *check.Builder
	Enricher   *enrich.Enricher
	Catalog    *catalog.Client
	Metrics    *observability.Metrics
	CORSConfig config.CORSConfig
	OpsToken   string
	InstanceID string
	Logger     zerolog.Logger
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.Metrics(deps.Metrics))

	healthH := NewHealthController(deps.Builder, deps.InstanceID)
	webhookH := NewWebhookController(deps.Runner, deps.Builder, deps.Enricher, deps.Logger)
	reportH := NewReportController(deps.Catalog)

	r.Get("/health", healthH.Health)
	r.Get("/health/live", healthH.Liveness)
	r.Get("/health/ready", healthH.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	// Webhooks
	r.Post("/webhooks/transactions", webhookH.HandleTransaction)
	r.Post("/webhooks/items", webhookH.HandleItem)

	// Ops
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(customMW.RequireOpsToken(deps.OpsToken))
		r.Post("/reports/{type}", reportH.RunReport)
	})

	return r
}
