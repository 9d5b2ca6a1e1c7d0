package paging

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/ncobase/relaypage/query"
)

// ValueType teaches a Codec to carry one more kind of sort-key value, such as
// a store-native identity type.
type ValueType struct {
	// Kind is the short tag written into cursors. It must be unique per codec.
	Kind string
	// Match reports whether v is of this type.
	Match func(v any) bool
	// Format renders v as text.
	Format func(v any) (string, error)
	// Parse restores a value from its text form.
	Parse func(s string) (any, error)
}

// built-in kinds
const (
	kindNull   = "z"
	kindBool   = "b"
	kindInt    = "i"
	kindFloat  = "f"
	kindString = "s"
	kindRaw    = "r"
	kindBytes  = "x"
	kindTime   = "t"
)

var builtinKinds = map[string]bool{
	kindNull: true, kindBool: true, kindInt: true, kindFloat: true,
	kindString: true, kindRaw: true, kindBytes: true, kindTime: true,
}

// encodeValue renders v as a (kind, text) pair.
func (c *Codec) encodeValue(v any) ([2]string, error) {
	for _, vt := range c.types {
		if vt.Match(v) {
			s, err := vt.Format(v)
			if err != nil {
				return [2]string{}, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
			}
			if !utf8.ValidString(s) {
				return [2]string{}, fmt.Errorf("%w: %s text is not valid UTF-8", ErrUnsupportedValue, vt.Kind)
			}
			return [2]string{vt.Kind, s}, nil
		}
	}

	switch val := query.Normalize(v).(type) {
	case nil:
		return [2]string{kindNull, ""}, nil
	case bool:
		return [2]string{kindBool, strconv.FormatBool(val)}, nil
	case int64:
		return [2]string{kindInt, strconv.FormatInt(val, 10)}, nil
	case float64:
		return [2]string{kindFloat, strconv.FormatFloat(val, 'g', -1, 64)}, nil
	case string:
		if !utf8.ValidString(val) {
			// JSON would replace the invalid bytes with U+FFFD.
			return [2]string{kindRaw, base64.RawStdEncoding.EncodeToString([]byte(val))}, nil
		}
		return [2]string{kindString, val}, nil
	case []byte:
		return [2]string{kindBytes, base64.RawStdEncoding.EncodeToString(val)}, nil
	case time.Time:
		return [2]string{kindTime, val.Format(time.RFC3339Nano)}, nil
	}
	return [2]string{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

// decodeValue restores a value written by encodeValue.
func (c *Codec) decodeValue(w [2]string) (any, error) {
	kind, s := w[0], w[1]
	switch kind {
	case kindNull:
		if s != "" {
			return nil, fmt.Errorf("unexpected payload for null")
		}
		return nil, nil
	case kindBool:
		return strconv.ParseBool(s)
	case kindInt:
		return strconv.ParseInt(s, 10, 64)
	case kindFloat:
		return strconv.ParseFloat(s, 64)
	case kindString:
		return s, nil
	case kindRaw:
		b, err := base64.RawStdEncoding.DecodeString(s)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case kindBytes:
		return base64.RawStdEncoding.DecodeString(s)
	case kindTime:
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, err
		}
		return t.UTC(), nil
	}
	for _, vt := range c.types {
		if vt.Kind == kind {
			return vt.Parse(s)
		}
	}
	return nil, fmt.Errorf("unknown value kind %q", kind)
}
