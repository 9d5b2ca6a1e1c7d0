package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncobase/relaypage/data/config"
	"github.com/ncobase/relaypage/data/metrics"
	"github.com/ncobase/relaypage/logging/logger"
	"github.com/ncobase/relaypage/paging"
	"github.com/ncobase/relaypage/query"
	"github.com/sony/gobreaker"
)

// ErrUnavailable reports a store call rejected by an open circuit breaker.
var ErrUnavailable = errors.New("data: store unavailable")

// guarded routes store calls through a circuit breaker
type guarded struct {
	next Collection
	cb   *gobreaker.CircuitBreaker
}

// Breaker wraps c in a circuit breaker named name. Once the failure ratio
// configured in cfg is reached, calls fail fast with ErrUnavailable until
// the breaker half-opens again. Cancelled calls do not count as failures.
func Breaker(c Collection, name string, cfg *config.Breaker, collector metrics.Collector) Collection {
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warnf(context.Background(), "data: breaker %s changed from %s to %s", name, from, to)
			collector.BreakerState(name, to.String())
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || paging.IsClientError(err)
		},
	})
	return &guarded{next: c, cb: cb}
}

func (s *guarded) Find(ctx context.Context, q query.Find) ([]Document, error) {
	res, err := s.cb.Execute(func() (any, error) {
		return s.next.Find(ctx, q)
	})
	if err != nil {
		return nil, s.wrap(err)
	}
	return res.([]Document), nil
}

func (s *guarded) Count(ctx context.Context, filter query.Expr) (int64, error) {
	res, err := s.cb.Execute(func() (any, error) {
		return s.next.Count(ctx, filter)
	})
	if err != nil {
		return 0, s.wrap(err)
	}
	return res.(int64), nil
}

func (s *guarded) wrap(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, s.cb.Name(), err)
	}
	return err
}

// FieldValue implements paging.FieldValuer.
func (s *guarded) FieldValue(doc Document, field string) (any, error) {
	return FieldValue(s.next, doc, field)
}

// CursorCodec implements paging.CodecProvider.
func (s *guarded) CursorCodec() *paging.Codec {
	return CursorCodec(s.next)
}
