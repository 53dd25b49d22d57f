package check

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vireolabs/ticketcheck/internal/domain/transaction"
	"github.com/vireolabs/ticketcheck/internal/observability"
)

// Runner executes a strategy list against a transaction and aggregates a
// verdict. Strategies run sequentially in list order; several share
// rate-limited APIs and sequential execution keeps failure attribution
// deterministic. No error or panic escapes Run: a result is always produced
// for a well-formed transaction and strategy list.
type Runner struct {
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// NewRunner creates a Runner.
func NewRunner(logger zerolog.Logger, metrics *observability.Metrics) *Runner {
	return &Runner{
		logger:  logger.With().Str("component", "check-runner").Logger(),
		metrics: metrics,
	}
}

// Run evaluates every applicable strategy. The overall verdict is the AND of
// all executed results and never resets to true once failed; a transaction
// with zero applicable checks is not considered validated.
func (r *Runner) Run(ctx context.Context, tx *transaction.Transaction, strategies []Strategy) Report {
	report := Report{Overall: true, Results: make([]Result, 0, len(strategies))}
	executed := false

	for _, s := range strategies {
		if !r.supports(s, tx) {
			report.Results = append(report.Results, Result{Name: s.Name()})
			if r.metrics != nil {
				r.metrics.ChecksSkipped.WithLabelValues(s.Name()).Inc()
			}
			continue
		}

		passed := r.evaluate(ctx, s, tx)
		executed = true
		if !passed {
			report.Overall = false
		}
		report.Results = append(report.Results, Result{Name: s.Name(), Executed: true, Passed: passed})
	}

	if !executed {
		report.Overall = false
	}

	if r.metrics != nil {
		verdict := "failed"
		if report.Overall {
			verdict = "passed"
		}
		r.metrics.TicketVerdicts.WithLabelValues(verdict).Inc()
	}
	return report
}

// supports isolates panics in a strategy's applicability test; a strategy
// that cannot even inspect the transaction is treated as not applicable.
func (r *Runner) supports(s Strategy, tx *transaction.Transaction) (ok bool) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error().Interface("panic", p).Str("strategy", s.Name()).Str("transaction_id", tx.IDString()).Msg("panic in supports")
			ok = false
		}
	}()
	return s.Supports(tx)
}

// evaluate isolates a single strategy run. Errors and panics are logged with
// the strategy name and transaction id and reported as a failed check.
func (r *Runner) evaluate(ctx context.Context, s Strategy, tx *transaction.Transaction) (passed bool) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error().Interface("panic", p).Str("strategy", s.Name()).Str("transaction_id", tx.IDString()).Msg("panic in evaluate")
			passed = false
		}
	}()

	start := time.Now()
	ok, err := s.Evaluate(ctx, tx)
	if r.metrics != nil {
		r.metrics.CheckDuration.WithLabelValues(s.Name()).Observe(time.Since(start).Seconds())
	}

	if err != nil {
		r.logger.Error().Err(err).Str("strategy", s.Name()).Str("transaction_id", tx.IDString()).Msg("check evaluation failed")
		ok = false
	}

	if r.metrics != nil {
		outcome := "failed"
		if ok {
			outcome = "passed"
		}
		r.metrics.ChecksRun.WithLabelValues(s.Name(), outcome).Inc()
	}
	return ok
}
