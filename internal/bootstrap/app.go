package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/vireolabs/ticketcheck/internal/check"
	"github.com/vireolabs/ticketcheck/internal/client/catalog"
	"github.com/vireolabs/ticketcheck/internal/client/catalogref"
	"github.com/vireolabs/ticketcheck/internal/client/messaging"
	"github.com/vireolabs/ticketcheck/internal/config"
	"github.com/vireolabs/ticketcheck/internal/enrich"
	"github.com/vireolabs/ticketcheck/internal/lookup"
	"github.com/vireolabs/ticketcheck/internal/notify"
	"github.com/vireolabs/ticketcheck/internal/observability"
	"github.com/vireolabs/ticketcheck/internal/secrets"
	"github.com/vireolabs/ticketcheck/pkg/retry"
)

type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Metrics  *observability.Metrics
	Runner   *check.Runner
	Builder  *check.Builder
	Enricher *enrich.Enricher
	Catalog  *catalog.Client

	tp *sdktrace.TracerProvider
}

func New(ctx context.Context, serviceName, metricsNamespace string) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := observability.InitLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.Info().Str("service", serviceName).Msg("Starting")

	app := &App{Config: cfg, Logger: logger}

	if cfg.Observability.EnableTracing {
		tp, err := observability.InitTracer(serviceName, cfg.Observability.JaegerEndpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
		} else {
			app.tp = tp
			logger.Info().Msg("Tracing enabled")
		}
	}

	app.Metrics = observability.NewMetrics(metricsNamespace, nil)
	logger.Info().Msg("Metrics initialized")

	table, err := lookup.Load(cfg.Lookup.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("load lookup table: %w", err)
	}

	tokens, store := buildTokenSource(cfg, logger)
	notifier := buildNotifier(cfg, app.Metrics, logger)

	retryCfg := retry.DefaultConfig()
	if cfg.Catalog.MaxRetries > 0 {
		retryCfg.MaxAttempts = cfg.Catalog.MaxRetries
	}

	if cfg.Catalog.BaseURL != "" && tokens != nil {
		app.Catalog = catalog.New(cfg.Catalog.BaseURL, tokens,
			catalog.WithRetryConfig(retryCfg),
			catalog.WithLogger(logger),
			catalog.WithMetrics(app.Metrics),
		)
	}

	app.Enricher = buildEnricher(ctx, cfg, app.Catalog, store, table, app.Metrics, logger)

	app.Builder = check.NewBuilder(check.BuilderConfig{
		BaseURL:                  cfg.Catalog.BaseURL,
		Tokens:                   tokens,
		Notifier:                 notifier,
		ExcludedItems:            table.ExcludedItemIDs(),
		HighDiscountThresholdPct: cfg.Checks.HighDiscountThresholdPct,
		ClientTimeout:            cfg.Catalog.RequestTimeout,
		Retry:                    retryCfg,
	}, logger)
	app.Runner = check.NewRunner(logger, app.Metrics)

	return app, nil
}

// buildTokenSource picks the API token source: a static token from config
// for local runs, otherwise the managed secret store. Returns the store as
// well when one was built, for OAuth credential access.
func buildTokenSource(cfg *config.Config, logger zerolog.Logger) (secrets.TokenSource, *secrets.Store) {
	if cfg.Secrets.StaticToken != "" {
		return secrets.NewStaticTokenSource(cfg.Secrets.StaticToken), nil
	}
	if cfg.Secrets.SecretID == "" {
		logger.Info().Msg("no api credentials configured")
		return nil, nil
	}

	sess := session.Must(session.NewSession(&aws.Config{Region: aws.String(cfg.Secrets.Region)}))
	store := secrets.NewStore(secretsmanager.New(sess), cfg.Secrets.SecretID, logger)
	return store, store
}

func buildNotifier(cfg *config.Config, metrics *observability.Metrics, logger zerolog.Logger) *notify.Notifier {
	var sender notify.Sender
	if cfg.Messaging.BotID != "" {
		sender = messaging.New(cfg.Messaging.BaseURL, cfg.Messaging.BotID, cfg.Messaging.RequestTimeout)
	} else {
		logger.Info().Msg("messaging bot not configured, notifications will be dropped")
		sender = notify.NopSender{}
	}
	return notify.New(sender, metrics, logger, cfg.Messaging.BreakerThreshold, cfg.Messaging.BreakerTimeout)
}

// buildEnricher wires the item enrichment path. It needs the catalog client
// plus OAuth credentials from the secret store; anything missing disables
// enrichment with a log line, never fatally.
func buildEnricher(ctx context.Context, cfg *config.Config, catalogClient *catalog.Client, store *secrets.Store, table *lookup.Table, metrics *observability.Metrics, logger zerolog.Logger) *enrich.Enricher {
	if catalogClient == nil || cfg.CatalogRef.BaseURL == "" || store == nil {
		logger.Info().Msg("item enrichment disabled")
		return nil
	}

	creds, err := store.Credentials(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("could not load credentials, item enrichment disabled")
		return nil
	}

	refClient, err := catalogref.New(cfg.CatalogRef.BaseURL, creds, cfg.CatalogRef.RequestTimeout, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("catalog-reference client unavailable, item enrichment disabled")
		return nil
	}

	return enrich.New(catalogClient, refClient, table, metrics, logger)
}

func (a *App) Close() {
	if a.tp != nil {
		if err := observability.Shutdown(context.Background(), a.tp); err != nil {
			a.Logger.Warn().Err(err).Msg("tracer shutdown failed")
		}
	}
}
