package paging

import "errors"

var (
	// ErrInvalidArgument reports contradictory or out-of-range page arguments.
	ErrInvalidArgument = errors.New("paging: invalid argument")
	// ErrMalformedCursor reports a non-empty cursor this codec cannot decode,
	// or one issued for a different sort order.
	ErrMalformedCursor = errors.New("paging: malformed cursor")
	// ErrFieldNotFound reports a sort or tie-break field missing from a record.
	ErrFieldNotFound = errors.New("paging: field not found")
	// ErrUnsupportedValue reports a sort key the codec cannot encode.
	ErrUnsupportedValue = errors.New("paging: unsupported cursor value")
)

// IsClientError reports whether err was caused by the request rather than by
// the store.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) || errors.Is(err, ErrMalformedCursor)
}
