package paging

import (
	"context"

	"github.com/ncobase/relaypage/query"
)

// Store is the read capability the engine paginates over.
//
// Find must return records satisfying q.Where(), ordered by q.Sort, at most
// q.Limit of them when q.Limit > 0. Count must count records satisfying
// filter alone.
type Store[T any] interface {
	Count(ctx context.Context, filter query.Expr) (int64, error)
	Find(ctx context.Context, q query.Find) ([]T, error)
}

// FieldValuer is implemented by stores whose records need custom field
// access, e.g. ordered documents.
type FieldValuer[T any] interface {
	FieldValue(record T, field string) (any, error)
}

// CodecProvider is implemented by stores whose identity values need a codec
// with extra value types.
type CodecProvider interface {
	CursorCodec() *Codec
}

// StoreFunc adapts two functions into a Store.
type StoreFunc[T any] struct {
	CountFunc func(ctx context.Context, filter query.Expr) (int64, error)
	FindFunc  func(ctx context.Context, q query.Find) ([]T, error)
}

// Count calls CountFunc.
func (s StoreFunc[T]) Count(ctx context.Context, filter query.Expr) (int64, error) {
	return s.CountFunc(ctx, filter)
}

// Find calls FindFunc.
func (s StoreFunc[T]) Find(ctx context.Context, q query.Find) ([]T, error) {
	return s.FindFunc(ctx, q)
}
