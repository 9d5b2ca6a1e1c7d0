package paging

import (
	"fmt"

	"github.com/ncobase/relaypage/ecode"
)

// Args describes which page to fetch, in the style of the Relay connection
// specification: https://relay.dev/graphql/connections.htm
//
// Moving forward, set First and After. Moving backward, set Last and Before.
// An empty cursor means "no boundary": First alone returns the first N
// records and Last alone returns the last N.
type Args struct {
	First  *int   `json:"first,omitempty" form:"first"`
	After  string `json:"after,omitempty" form:"after"`
	Last   *int   `json:"last,omitempty" form:"last"`
	Before string `json:"before,omitempty" form:"before"`
}

// Forward returns arguments for the first n records after cursor.
func Forward(n int, after string) Args {
	return Args{First: &n, After: after}
}

// Backward returns arguments for the last n records before cursor.
func Backward(n int, before string) Args {
	return Args{Last: &n, Before: before}
}

// IsBackward reports whether the arguments describe a backward window.
func (a Args) IsBackward() bool {
	return a.Last != nil || a.Before != ""
}

func (a Args) isForward() bool {
	return a.First != nil || a.After != ""
}

// Validate rejects negative sizes and requests mixing forward and backward
// arguments.
func (a Args) Validate() error {
	if a.First != nil && *a.First < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidArgument, ecode.FieldIsNegative("first"))
	}
	if a.Last != nil && *a.Last < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidArgument, ecode.FieldIsNegative("last"))
	}
	if a.isForward() && a.IsBackward() {
		return fmt.Errorf("%w: first/after cannot be combined with last/before", ErrInvalidArgument)
	}
	return nil
}

// size returns the requested page size, or -1 when the window is unbounded.
func (a Args) size() int {
	switch {
	case a.First != nil:
		return *a.First
	case a.Last != nil:
		return *a.Last
	}
	return -1
}

// cursor returns the boundary cursor for the window.
func (a Args) cursor() string {
	if a.IsBackward() {
		return a.Before
	}
	return a.After
}

// Limits bounds page sizes.
type Limits struct {
	// DefaultPageSize applies when neither First nor Last is given.
	// 0 leaves such requests unbounded.
	DefaultPageSize int `json:"default_page_size" mapstructure:"default_page_size" validate:"gte=0"`
	// MaxPageSize clamps larger requests. 0 disables clamping.
	MaxPageSize int `json:"max_page_size" mapstructure:"max_page_size" validate:"gte=0"`
}

// Normalize applies the limits to a requested size, -1 meaning unbounded.
func (l Limits) Normalize(size int) int {
	if size < 0 {
		if l.DefaultPageSize <= 0 {
			return -1
		}
		size = l.DefaultPageSize
	}
	if l.MaxPageSize > 0 && size > l.MaxPageSize {
		size = l.MaxPageSize
	}
	return size
}
