// Package paging provides bidirectional, cursor-based pagination over any
// store that can count, filter, sort and limit, following the Relay cursor
// connection contract.
//
// Cursor pagination stays correct when the sort field is not unique: every
// order is extended with a unique tie-break field, so each record has exactly
// one position and repeated requests neither skip nor duplicate records.
//
// # Basic Usage
//
// Resolve a page from page arguments, a store and a base filter:
//
//	conn, err := paging.Resolve(ctx, paging.Forward(10, after), store,
//	    query.In("type", foodTypes),
//	    &paging.Options[Product, Product]{
//	        CursorField: "price",
//	        Direction:   paging.Descending,
//	    })
//
// The connection carries the edges, the page info and the total count:
//
//	{
//	  "edges": [{"node": {...}, "cursor": "..."}],
//	  "pageInfo": {"hasNextPage": true, "hasPreviousPage": false,
//	               "startCursor": "...", "endCursor": "..."},
//	  "totalCount": 102
//	}
//
// Walk forward by passing pageInfo.endCursor as the next After, or backward
// with paging.Backward(n, pageInfo.startCursor).
//
// # Mapping Nodes
//
// ResolveMapped shapes nodes without affecting cursors:
//
//	conn, err := paging.ResolveMapped(ctx, args, store, nil,
//	    &paging.Options[Product, PriceView]{
//	        CursorField: "price",
//	        MapNode:     toPriceView,
//	    })
//
// # Cursors
//
// Cursors are opaque. A cursor is valid only for the sort order that issued
// it; presenting it under another order fails with ErrMalformedCursor.
// Stores with identity types beyond the built-in scalars provide a Codec
// through CodecProvider.
//
// # Errors
//
//   - ErrInvalidArgument: negative sizes, forward and backward arguments mixed
//   - ErrMalformedCursor: a non-empty cursor that cannot be decoded
//   - anything else comes from the store, unchanged
package paging
