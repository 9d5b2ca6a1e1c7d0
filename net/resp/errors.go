package resp

import (
	"errors"
	"net/http"

	"github.com/ncobase/relaypage/data"
	"github.com/ncobase/relaypage/ecode"
	"github.com/ncobase/relaypage/paging"
)

// BadRequest indicates a bad request.
func BadRequest(message string, data ...any) *Exception {
	return newException(http.StatusBadRequest, ecode.RequestErr, message, data...)
}

// InvalidParams indicates page arguments that failed validation.
func InvalidParams(message string, data ...any) *Exception {
	return newException(http.StatusBadRequest, ecode.ParamErr, message, data...)
}

// InvalidCursor indicates a cursor this service did not issue for the
// requested order.
func InvalidCursor(message string, data ...any) *Exception {
	return newException(http.StatusBadRequest, ecode.CursorErr, message, data...)
}

// NotFound indicates that the requested resource is not found.
func NotFound(message string, data ...any) *Exception {
	return newException(http.StatusNotFound, ecode.NotFound, message, data...)
}

// InternalServer indicates a server error.
func InternalServer(message string, data ...any) *Exception {
	return newException(http.StatusInternalServerError, ecode.ServerErr, message, data...)
}

// Unavailable indicates the store is failing or its circuit is open.
func Unavailable(message string, data ...any) *Exception {
	return newException(http.StatusServiceUnavailable, ecode.StoreErr, message, data...)
}

// FromError maps errors of the paging and data layers onto responses.
// Client errors keep their message; anything else is reported as an
// internal error without details.
func FromError(err error) *Exception {
	var e *Exception
	switch {
	case err == nil:
		return nil
	case errors.As(err, &e):
		return e
	case errors.Is(err, paging.ErrMalformedCursor):
		return InvalidCursor(err.Error())
	case errors.Is(err, paging.ErrInvalidArgument),
		errors.Is(err, data.ErrInvalidCollection):
		return InvalidParams(err.Error())
	case errors.Is(err, data.ErrCollectionNotFound):
		return NotFound(err.Error())
	case errors.Is(err, data.ErrUnavailable):
		return Unavailable(ecode.Text(ecode.StoreErr))
	}
	return InternalServer(ecode.Text(ecode.ServerErr))
}
