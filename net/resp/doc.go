// Package resp writes the JSON responses of the HTTP binding.
//
// # Success Responses
//
// The payload is written as the body:
//
//	resp.Success(w, conn)
//
// # Failure Responses
//
// Failures carry a business code from ecode and a message:
//
//	{"code": -402, "message": "paging: malformed cursor"}
//
// FromError maps paging and data errors onto failures:
//
//	paging.ErrMalformedCursor     400, ecode.CursorErr
//	paging.ErrInvalidArgument     400, ecode.ParamErr
//	data.ErrInvalidCollection     400, ecode.ParamErr
//	data.ErrCollectionNotFound    404, ecode.NotFound
//	data.ErrUnavailable           503, ecode.StoreErr
//	anything else                 500, ecode.ServerErr
package resp
