package paging

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Position is the location of one record within a sort order: its sort-key
// and tie-break values, plus the signature of the order itself.
type Position struct {
	Sort     string
	Key      any
	TieBreak any
}

type wireCursor struct {
	Sort     string    `json:"s"`
	Key      [2]string `json:"k"`
	TieBreak [2]string `json:"t"`
}

// Codec maps positions to opaque cursor strings and back. It holds no
// ordering logic. A Codec is immutable and safe for concurrent use.
type Codec struct {
	types []ValueType
}

var defaultCodec = NewCodec()

// DefaultCodec returns the codec handling only built-in value kinds.
func DefaultCodec() *Codec {
	return defaultCodec
}

// NewCodec creates a codec extended with the given value types. It panics if
// two types share a kind or a kind shadows a built-in one.
func NewCodec(types ...ValueType) *Codec {
	seen := make(map[string]bool, len(types))
	for _, vt := range types {
		if vt.Kind == "" || vt.Match == nil || vt.Format == nil || vt.Parse == nil {
			panic("paging: incomplete value type")
		}
		if builtinKinds[vt.Kind] || seen[vt.Kind] {
			panic(fmt.Sprintf("paging: value kind %q already registered", vt.Kind))
		}
		seen[vt.Kind] = true
	}
	return &Codec{types: append([]ValueType(nil), types...)}
}

// Encode renders a position as an opaque cursor. The same position always
// yields the same cursor.
func (c *Codec) Encode(pos Position) (string, error) {
	key, err := c.encodeValue(pos.Key)
	if err != nil {
		return "", err
	}
	tie, err := c.encodeValue(pos.TieBreak)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(wireCursor{Sort: pos.Sort, Key: key, TieBreak: tie})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Decode parses a cursor produced by Encode. The empty cursor means "no
// boundary" and decodes to a nil position without error.
func (c *Codec) Decode(cursor string) (*Position, error) {
	if cursor == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCursor, err)
	}
	var w wireCursor
	if err := json.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCursor, err)
	}
	if w.Key[0] == "" || w.TieBreak[0] == "" {
		return nil, fmt.Errorf("%w: missing position", ErrMalformedCursor)
	}
	key, err := c.decodeValue(w.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: sort key: %v", ErrMalformedCursor, err)
	}
	tie, err := c.decodeValue(w.TieBreak)
	if err != nil {
		return nil, fmt.Errorf("%w: tie-break: %v", ErrMalformedCursor, err)
	}
	return &Position{Sort: w.Sort, Key: key, TieBreak: tie}, nil
}
