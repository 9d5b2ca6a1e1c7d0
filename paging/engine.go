package paging

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/ncobase/relaypage/logging/logger"
	"github.com/ncobase/relaypage/query"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/ncobase/relaypage/paging"

// Options configures a single resolve call.
type Options[T, U any] struct {
	// CursorField is the sort field. Empty sorts by the tie-break field alone.
	CursorField string
	// Direction of the sort. Anything but Ascending or Descending, including
	// the zero value, means Ascending.
	Direction Direction
	// TieBreakField must be unique across the collection. Defaults to "_id".
	TieBreakField string
	// MapNode shapes each record before it is wrapped in an edge. Cursors are
	// always computed from the unmapped record.
	MapNode func(T) U
	// FieldValue overrides how sort values are read from records. Defaults to
	// the store's FieldValuer, then LookupField.
	FieldValue func(record T, field string) (any, error)
	// Codec overrides the cursor codec. Defaults to the store's
	// CodecProvider, then DefaultCodec.
	Codec *Codec
	// Limits bounds page sizes.
	Limits Limits
}

// SortSpec returns the effective sort specification.
func (o *Options[T, U]) SortSpec() SortSpec {
	tie := o.TieBreakField
	if tie == "" {
		tie = DefaultTieBreakField
	}
	field := o.CursorField
	if field == "" {
		field = tie
	}
	return SortSpec{Field: field, Direction: o.Direction.orDefault(), TieBreakField: tie}
}

func (o *Options[T, U]) codec(store Store[T]) *Codec {
	if o.Codec != nil {
		return o.Codec
	}
	if p, ok := store.(CodecProvider); ok {
		if c := p.CursorCodec(); c != nil {
			return c
		}
	}
	return DefaultCodec()
}

func (o *Options[T, U]) fieldValue(store Store[T]) func(T, string) (any, error) {
	if o.FieldValue != nil {
		return o.FieldValue
	}
	if fv, ok := store.(FieldValuer[T]); ok {
		return fv.FieldValue
	}
	return func(record T, field string) (any, error) {
		return LookupField(record, field)
	}
}

// Resolve returns one page of the records of store matching filter.
// Nodes are returned unmapped; opts may be nil.
func Resolve[T any](ctx context.Context, args Args, store Store[T], filter query.Expr, opts *Options[T, T]) (*Connection[T], error) {
	var o Options[T, T]
	if opts != nil {
		o = *opts
	}
	if o.MapNode == nil {
		o.MapNode = func(record T) T { return record }
	}
	return ResolveMapped(ctx, args, store, filter, &o)
}

// ResolveMapped returns one page of the records of store matching filter,
// each node passed through opts.MapNode.
//
// The store is queried once with Find, over-fetching by one record to learn
// whether more records exist in the scan direction, and once with Count for
// the total. Both calls run concurrently; a failure of either aborts the
// call and is returned unchanged.
func ResolveMapped[T, U any](ctx context.Context, args Args, store Store[T], filter query.Expr, opts *Options[T, U]) (conn *Connection[U], err error) {
	if opts == nil || opts.MapNode == nil {
		return nil, fmt.Errorf("%w: MapNode is required", ErrInvalidArgument)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: nil store", ErrInvalidArgument)
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "paging.Resolve")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := args.Validate(); err != nil {
		return nil, err
	}
	if err := query.Validate(filter); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	spec := opts.SortSpec()
	codec := opts.codec(store)
	getField := opts.fieldValue(store)

	pos, err := codec.Decode(args.cursor())
	if err != nil {
		return nil, err
	}
	if pos != nil && pos.Sort != spec.signature() {
		return nil, fmt.Errorf("%w: issued for a different sort order", ErrMalformedCursor)
	}

	backward := args.IsBackward()
	scan := spec.Direction
	if backward {
		// Scan away from the boundary so the nearest records come first.
		scan = scan.Reverse()
	}

	size := opts.Limits.Normalize(args.size())
	find := query.Find{
		Filter:   filter,
		Boundary: spec.boundary(pos, scan),
		Sort:     spec.orders(scan),
	}
	if size >= 0 && size < math.MaxInt {
		find.Limit = size + 1
	}

	span.SetAttributes(
		attribute.String("paging.sort", spec.String()),
		attribute.Bool("paging.backward", backward),
		attribute.Bool("paging.bounded", pos != nil),
		attribute.Int("paging.limit", find.Limit),
	)

	var (
		records []T
		total   int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = store.Find(gctx, find)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = store.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	more := false
	if size >= 0 && len(records) > size {
		more = true
		records = records[:size]
	}
	if backward {
		slices.Reverse(records)
	}

	conn = &Connection[U]{
		Edges:      make([]Edge[U], 0, len(records)),
		TotalCount: total,
	}
	for _, record := range records {
		cursor, err := encodeCursor(codec, spec, getField, record)
		if err != nil {
			return nil, err
		}
		conn.Edges = append(conn.Edges, Edge[U]{Node: opts.MapNode(record), Cursor: cursor})
	}

	if backward {
		conn.PageInfo.HasPreviousPage = more
		conn.PageInfo.HasNextPage = pos != nil
	} else {
		conn.PageInfo.HasNextPage = more
		conn.PageInfo.HasPreviousPage = pos != nil
	}
	if n := len(conn.Edges); n > 0 {
		conn.PageInfo.StartCursor = conn.Edges[0].Cursor
		conn.PageInfo.EndCursor = conn.Edges[n-1].Cursor
	}

	span.SetAttributes(attribute.Int("paging.edges", len(conn.Edges)))
	logger.Debugf(ctx, "paging: sort=%q backward=%t bounded=%t limit=%d edges=%d total=%d",
		spec.String(), backward, pos != nil, find.Limit, len(conn.Edges), total)

	return conn, nil
}

// encodeCursor computes the cursor of a record from its own field values.
// A missing sort key is encoded as null, the way document stores order it;
// a missing tie-break is an error since it would break the total order.
func encodeCursor[T any](codec *Codec, spec SortSpec, get func(T, string) (any, error), record T) (string, error) {
	key, err := get(record, spec.Field)
	if err != nil {
		if spec.unique() || !errors.Is(err, ErrFieldNotFound) {
			return "", err
		}
		key = nil
	}
	tie := key
	if !spec.unique() {
		if tie, err = get(record, spec.TieBreakField); err != nil {
			return "", err
		}
	}
	return codec.Encode(Position{Sort: spec.signature(), Key: key, TieBreak: tie})
}
