package data

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/ncobase/relaypage/logging/logger"
	"github.com/ncobase/relaypage/paging"
	"github.com/ncobase/relaypage/query"
)

// CountStore keeps total counts by key. *cache.Cache[int64] implements it.
type CountStore interface {
	Get(ctx context.Context, key string) (*int64, error)
	Set(ctx context.Context, key string, n *int64, expire time.Duration) error
}

// countCached serves Count from a CountStore
type countCached struct {
	next  Collection
	name  string
	store CountStore
	ttl   time.Duration
}

// CountCache wraps c so that Count results are kept in store for ttl, keyed
// by the collection name and filter. Cache failures are logged and fall
// through to c. Totals may lag writes by up to ttl.
func CountCache(c Collection, name string, store CountStore, ttl time.Duration) Collection {
	return &countCached{next: c, name: name, store: store, ttl: ttl}
}

// CountKey returns the cache key of the total of filter in the named
// collection.
func CountKey(name string, filter query.Expr) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%#v", filter)))
	return name + ":" + hex.EncodeToString(sum[:])
}

func (s *countCached) Find(ctx context.Context, q query.Find) ([]Document, error) {
	return s.next.Find(ctx, q)
}

func (s *countCached) Count(ctx context.Context, filter query.Expr) (int64, error) {
	key := CountKey(s.name, filter)
	cached, err := s.store.Get(ctx, key)
	if err != nil {
		logger.Warnf(ctx, "data: count cache get %s: %v", s.name, err)
	} else if cached != nil {
		return *cached, nil
	}

	n, err := s.next.Count(ctx, filter)
	if err != nil {
		return 0, err
	}
	if err := s.store.Set(ctx, key, &n, s.ttl); err != nil {
		logger.Warnf(ctx, "data: count cache set %s: %v", s.name, err)
	}
	return n, nil
}

// FieldValue implements paging.FieldValuer.
func (s *countCached) FieldValue(doc Document, field string) (any, error) {
	return FieldValue(s.next, doc, field)
}

// CursorCodec implements paging.CodecProvider.
func (s *countCached) CursorCodec() *paging.Codec {
	return CursorCodec(s.next)
}
