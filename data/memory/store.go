// Package memory provides an in-process store over a slice of records.
//
// It evaluates query expressions directly and orders records with
// query.Compare, which makes it the reference implementation the other
// stores are checked against. It also registers the "memory" driver, which
// serves JSON fixture files.
package memory

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/ncobase/relaypage/paging"
	"github.com/ncobase/relaypage/query"
)

// Store is an in-memory paging.Store. It is safe for concurrent use.
type Store[T any] struct {
	mu      sync.RWMutex
	records []T
	field   func(T, string) (any, error)

	finds  atomic.Int64
	counts atomic.Int64
}

// Option configures a Store
type Option[T any] func(*Store[T])

// WithFieldFunc overrides how fields are read from records.
func WithFieldFunc[T any](fn func(T, string) (any, error)) Option[T] {
	return func(s *Store[T]) {
		s.field = fn
	}
}

// New creates a store holding a copy of records.
func New[T any](records []T, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		records: slices.Clone(records),
		field: func(record T, field string) (any, error) {
			return paging.LookupField(record, field)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert appends records.
func (s *Store[T]) Insert(records ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
}

// Len returns the number of records held.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Calls returns how many times Find and Count have been called.
func (s *Store[T]) Calls() (finds, counts int64) {
	return s.finds.Load(), s.counts.Load()
}

// FieldValue implements paging.FieldValuer.
func (s *Store[T]) FieldValue(record T, field string) (any, error) {
	return s.field(record, field)
}

// Count implements paging.Store.
func (s *Store[T]) Count(ctx context.Context, filter query.Expr) (int64, error) {
	s.counts.Add(1)
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	matched, err := s.filter(filter)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

// Find implements paging.Store.
func (s *Store[T]) Find(ctx context.Context, q query.Find) ([]T, error) {
	s.finds.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matched, err := s.filter(q.Where())
	if err != nil {
		return nil, err
	}

	var sortErr error
	slices.SortStableFunc(matched, func(a, b T) int {
		for _, o := range q.Sort {
			av, err := s.value(a, o.Field)
			if err != nil && sortErr == nil {
				sortErr = err
			}
			bv, err := s.value(b, o.Field)
			if err != nil && sortErr == nil {
				sortErr = err
			}
			c := query.Compare(av, bv)
			if o.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	if sortErr != nil {
		return nil, sortErr
	}

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (s *Store[T]) filter(e query.Expr) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.records))
	for _, record := range s.records {
		ok, err := query.Match(e, func(field string) (any, bool, error) {
			return s.lookup(record, field)
		})
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, record)
		}
	}
	return out, nil
}

// value reads a field, treating a missing field as null.
func (s *Store[T]) value(record T, field string) (any, error) {
	v, _, err := s.lookup(record, field)
	return v, err
}

func (s *Store[T]) lookup(record T, field string) (any, bool, error) {
	v, err := s.field(record, field)
	if errors.Is(err, paging.ErrFieldNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}
