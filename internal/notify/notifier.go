package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/vireolabs/ticketcheck/internal/observability"
)

// Sender posts one text message to the group chat.
type Sender interface {
	SendMessage(ctx context.Context, text string) error
}

// Notifier sends best-effort group messages. Send failures are logged and
// swallowed; they never influence a check verdict. A circuit breaker keeps a
// dead messaging API from slowing down every evaluation.
type Notifier struct {
	sender  Sender
	breaker *gobreaker.CircuitBreaker[struct{}]
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// New creates a Notifier around a Sender.
func New(sender Sender, metrics *observability.Metrics, logger zerolog.Logger, failureThreshold uint32, openTimeout time.Duration) *Notifier {
	n := &Notifier{
		sender:  sender,
		logger:  logger.With().Str("component", "notifier").Logger(),
		metrics: metrics,
	}

	n.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "messaging",
		MaxRequests: 1,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			n.logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			if n.metrics != nil {
				n.metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			}
		},
	})

	return n
}

// Notify sends one message, never returning an error. The source label names
// the strategy or handler that produced the message.
func (n *Notifier) Notify(ctx context.Context, source, text string) {
	_, err := n.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, n.sender.SendMessage(ctx, text)
	})
	if err != nil {
		n.logger.Warn().Err(err).Str("source", source).Msg("notification send failed")
		if n.metrics != nil {
			n.metrics.NotificationsFailed.WithLabelValues(source).Inc()
		}
		return
	}
	if n.metrics != nil {
		n.metrics.NotificationsSent.WithLabelValues(source).Inc()
	}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 2
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 0
	}
}
