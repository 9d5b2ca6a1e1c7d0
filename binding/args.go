// Package binding adapts paging to request layers: it parses page
// arguments from loosely typed maps, and serves collections over HTTP
// with gin.
package binding

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ncobase/relaypage/ecode"
	"github.com/ncobase/relaypage/paging"
)

// ParseArgs extracts Relay page arguments from a map, as decoded from
// GraphQL variables, JSON bodies or query strings. Sizes may be any integer
// type, an integral float, a json.Number or a numeric string; cursors must
// be strings. Missing, nil and empty values are left unset.
func ParseArgs(args map[string]any) (paging.Args, error) {
	var (
		page paging.Args
		err  error
	)

	if page.First, err = parseSize(args, "first"); err != nil {
		return page, err
	}
	if page.Last, err = parseSize(args, "last"); err != nil {
		return page, err
	}
	if page.After, err = parseCursor(args, "after"); err != nil {
		return page, err
	}
	if page.Before, err = parseCursor(args, "before"); err != nil {
		return page, err
	}

	return page, page.Validate()
}

func parseSize(args map[string]any, key string) (*int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}

	invalid := fmt.Errorf("%w: %s: %v", paging.ErrInvalidArgument, ecode.FieldIsInvalid(key), raw)
	var n int64
	switch v := raw.(type) {
	case int:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
			return nil, invalid
		}
		n = int64(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return nil, invalid
		}
		n = i
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, invalid
		}
		n = i
	default:
		return nil, invalid
	}
	if n > math.MaxInt32 || n < -math.MaxInt32 {
		return nil, invalid
	}
	size := int(n)
	return &size, nil
}

func parseCursor(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s: cannot cast %v to a string", paging.ErrInvalidArgument, ecode.FieldIsInvalid(key), raw)
	}
	return s, nil
}
