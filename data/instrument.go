package data

import (
	"context"
	"errors"
	"time"

	"github.com/ncobase/relaypage/data/metrics"
	"github.com/ncobase/relaypage/logging/logger"
	"github.com/ncobase/relaypage/paging"
	"github.com/ncobase/relaypage/query"
)

// instrumented records metrics around every store call
type instrumented struct {
	next      Collection
	driver    string
	collector metrics.Collector
}

// Instrument wraps c so that every Find and Count is timed and reported to
// collector, and failures are logged. Field access and the cursor codec of c
// are preserved.
func Instrument(c Collection, driver string, collector metrics.Collector) Collection {
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	return &instrumented{next: c, driver: driver, collector: collector}
}

func (s *instrumented) Find(ctx context.Context, q query.Find) ([]Document, error) {
	start := time.Now()
	docs, err := s.next.Find(ctx, q)
	s.observe(ctx, "find", start, err)
	return docs, err
}

func (s *instrumented) Count(ctx context.Context, filter query.Expr) (int64, error) {
	start := time.Now()
	n, err := s.next.Count(ctx, filter)
	s.observe(ctx, "count", start, err)
	return n, err
}

func (s *instrumented) observe(ctx context.Context, op string, start time.Time, err error) {
	elapsed := time.Since(start)
	s.collector.StoreQuery(s.driver, op, elapsed, err)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf(ctx, "data: %s %s failed after %s: %v", s.driver, op, elapsed, err)
	}
}

// FieldValue implements paging.FieldValuer.
func (s *instrumented) FieldValue(doc Document, field string) (any, error) {
	return FieldValue(s.next, doc, field)
}

// CursorCodec implements paging.CodecProvider.
func (s *instrumented) CursorCodec() *paging.Codec {
	return CursorCodec(s.next)
}
