package shipping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/cartcheckout/internal/domain"
	"github.com/nikolayk812/cartcheckout/internal/port"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

type BreakerConfig struct {
	Name string
	// ConsecutiveFailures opens the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
	// HalfOpenRequests is the number of trial requests allowed while half-open.
	HalfOpenRequests uint32
}

// Breaker stops calling a failing rate service and answers with
// domain.ErrExternalUnavailable until it recovers.
type Breaker struct {
	next port.RateQuoter
	cb   *gobreaker.CircuitBreaker[domain.Money]
}

var _ port.RateQuoter = (*Breaker)(nil)

func NewBreaker(next port.RateQuoter, cfg BreakerConfig, logger *zap.Logger) *Breaker {
	if cfg.Name == "" {
		cfg.Name = "shipping-rates"
	}
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.HalfOpenRequests == 0 {
		cfg.HalfOpenRequests = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cb := gobreaker.NewCircuitBreaker[domain.Money](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("rate quoter breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
		// a rejected method is an answer, not an outage
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrMethodUnavailable)
		},
	})

	return &Breaker{next: next, cb: cb}
}

func (b *Breaker) Quote(ctx context.Context, group domain.StoreGroup, method domain.ShippingMethod) (domain.Money, error) {
	fee, err := b.cb.Execute(func() (domain.Money, error) {
		return b.next.Quote(ctx, group, method)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return domain.Money{}, fmt.Errorf("breaker %s: %w: %w", b.cb.Name(), domain.ErrExternalUnavailable, err)
	}
	if err != nil {
		return domain.Money{}, err
	}
	return fee, nil
}

// State reports the breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
