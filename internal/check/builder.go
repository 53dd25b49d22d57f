package check

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vireolabs/ticketcheck/internal/client/catalog"
	"github.com/vireolabs/ticketcheck/internal/secrets"
	"github.com/vireolabs/ticketcheck/pkg/retry"
)

// BuilderConfig holds everything needed to assemble the strategy list.
type BuilderConfig struct {
	BaseURL                  string
	Tokens                   secrets.TokenSource
	Notifier                 Notifier
	ExcludedItems            map[int64]struct{}
	HighDiscountThresholdPct float64
	ClientTimeout            time.Duration
	Retry                    retry.Config
}

// Builder assembles the strategy list once per process lifetime and hands
// out the same slice on every call. The base three strategies are always
// included; the API-dependent ones are appended only when a base URL and a
// usable token are available, and any construction failure just omits them.
type Builder struct {
	cfg    BuilderConfig
	logger zerolog.Logger

	once       sync.Once
	strategies []Strategy

	// newCatalogAPI is swappable in tests.
	newCatalogAPI func() CatalogAPI
}

// NewBuilder creates a Builder.
func NewBuilder(cfg BuilderConfig, logger zerolog.Logger) *Builder {
	if cfg.ClientTimeout <= 0 {
		cfg.ClientTimeout = 10 * time.Second
	}
	b := &Builder{
		cfg:    cfg,
		logger: logger.With().Str("component", "check-builder").Logger(),
	}
	b.newCatalogAPI = func() CatalogAPI {
		return catalog.New(cfg.BaseURL, cfg.Tokens,
			catalog.WithHTTPClient(&http.Client{Timeout: cfg.ClientTimeout}),
			catalog.WithRetryConfig(cfg.Retry),
			catalog.WithLogger(b.logger),
		)
	}
	return b
}

// Strategies returns the memoized strategy list, building it on first call.
func (b *Builder) Strategies(ctx context.Context) []Strategy {
	b.once.Do(func() {
		list := []Strategy{
			NewTypeStatusStrategy(),
			NewBalanceStrategy(),
			NewCompletedTimestampStrategy(),
		}

		list = append(list, b.apiStrategies(ctx)...)
		b.strategies = list
	})
	return b.strategies
}

// apiStrategies builds the checks that depend on the catalog API. A missing
// base URL, token source or notifier, or an unreadable secret, logs and
// yields nothing; strategy construction is never fatal to the handler.
func (b *Builder) apiStrategies(ctx context.Context) []Strategy {
	if b.cfg.BaseURL == "" || b.cfg.Tokens == nil || b.cfg.Notifier == nil {
		b.logger.Info().Msg("catalog api not configured, api-dependent checks disabled")
		return nil
	}
	if _, err := b.cfg.Tokens.Token(ctx); err != nil {
		b.logger.Warn().Err(err).Msg("api token unavailable, api-dependent checks disabled")
		return nil
	}

	api := b.newCatalogAPI()
	return []Strategy{
		NewInventoryNonNegativeStrategy(api, b.cfg.Notifier, b.cfg.BaseURL, b.cfg.ExcludedItems, b.logger),
		NewPriceAdjustedStrategy(api, b.cfg.Notifier, b.cfg.BaseURL, b.logger),
		NewHighDiscountStrategy(b.cfg.Notifier, b.cfg.BaseURL, b.cfg.HighDiscountThresholdPct, b.logger),
	}
}
