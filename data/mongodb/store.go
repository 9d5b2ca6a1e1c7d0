package mongodb

import (
	"context"
	"fmt"

	"github.com/ncobase/relaypage/paging"
	"github.com/ncobase/relaypage/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store pages over a MongoDB collection, decoding documents into T.
type Store[T any] struct {
	name string
	coll func(ctx context.Context) *mongo.Collection
}

// NewStore creates a store over coll.
func NewStore[T any](coll *mongo.Collection) *Store[T] {
	return &Store[T]{
		name: coll.Name(),
		coll: func(context.Context) *mongo.Collection { return coll },
	}
}

// newManagedStore creates a store picking a read replica for every call.
func newManagedStore[T any](m *Manager, name string) *Store[T] {
	return &Store[T]{
		name: name,
		coll: func(ctx context.Context) *mongo.Collection { return m.Collection(ctx, name) },
	}
}

// FindOptions builds the options of a Find.
func FindOptions(q query.Find) *options.FindOptions {
	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(Sort(q.Sort))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return opts
}

// Find implements paging.Store.
func (s *Store[T]) Find(ctx context.Context, q query.Find) ([]T, error) {
	filter, err := Filter(q.Where())
	if err != nil {
		return nil, err
	}
	cur, err := s.coll(ctx).Find(ctx, filter, FindOptions(q))
	if err != nil {
		return nil, fmt.Errorf("mongodb: find %s: %w", s.name, err)
	}
	out := make([]T, 0, q.Limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("mongodb: decode %s: %w", s.name, err)
	}
	return out, nil
}

// Count implements paging.Store.
func (s *Store[T]) Count(ctx context.Context, filter query.Expr) (int64, error) {
	f, err := Filter(filter)
	if err != nil {
		return 0, err
	}
	n, err := s.coll(ctx).CountDocuments(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("mongodb: count %s: %w", s.name, err)
	}
	return n, nil
}

// FieldValue implements paging.FieldValuer.
func (s *Store[T]) FieldValue(record T, field string) (any, error) {
	return LookupField(record, field)
}

// CursorCodec implements paging.CodecProvider.
func (s *Store[T]) CursorCodec() *paging.Codec {
	return Codec()
}
