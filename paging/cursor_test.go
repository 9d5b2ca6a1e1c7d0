package paging

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := DefaultCodec()
	ts := time.Date(2024, 2, 29, 13, 4, 5, 123456789, time.FixedZone("CET", 3600))

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"bool", true, true},
		{"int", 42, int64(42)},
		{"int32", int32(-7), int64(-7)},
		{"uint8", uint8(200), int64(200)},
		{"float", 12.5, 12.5},
		{"float32", float32(0.25), 0.25},
		{"string", "Corellian Corvette", "Corellian Corvette"},
		{"empty string", "", ""},
		{"unicode", "Ünïcødé ✓", "Ünïcødé ✓"},
		{"invalid utf8", "a\xff", "a\xff"},
		{"binary uuid", string([]byte{0x9f, 0x00, 0xc3, 0x28, 0xfe}), string([]byte{0x9f, 0x00, 0xc3, 0x28, 0xfe})},
		{"bytes", []byte{0, 1, 2, 255}, []byte{0, 1, 2, 255}},
		{"time", ts, ts.UTC()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor, err := codec.Encode(Position{Sort: "price:1:_id", Key: tt.in, TieBreak: int64(9)})
			require.NoError(t, err)
			assert.NotEmpty(t, cursor)

			pos, err := codec.Decode(cursor)
			require.NoError(t, err)
			assert.Equal(t, "price:1:_id", pos.Sort)
			assert.Equal(t, tt.want, pos.Key)
			assert.Equal(t, int64(9), pos.TieBreak)
		})
	}
}

func TestCodecDeterministic(t *testing.T) {
	codec := DefaultCodec()
	pos := Position{Sort: "starshipClass:1:_id", Key: "Star Destroyer", TieBreak: int64(3)}

	a, err := codec.Encode(pos)
	require.NoError(t, err)
	b, err := codec.Encode(pos)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := codec.Encode(Position{Sort: pos.Sort, Key: pos.Key, TieBreak: int64(4)})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	assert.NotContains(t, a, "=")
	assert.NotContains(t, a, "+")
	assert.NotContains(t, a, "/")
}

func TestCodecEmptyCursor(t *testing.T) {
	pos, err := DefaultCodec().Decode("")
	assert.NoError(t, err)
	assert.Nil(t, pos)
}

func TestCodecMalformed(t *testing.T) {
	enc := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	for name, cursor := range map[string]string{
		"not base64":     "***",
		"not json":       enc("hello"),
		"empty object":   enc("{}"),
		"missing tie":    enc(`{"s":"x","k":["i","1"]}`),
		"unknown kind":   enc(`{"s":"x","k":["q","1"],"t":["i","1"]}`),
		"bad int":        enc(`{"s":"x","k":["i","one"],"t":["i","1"]}`),
		"bad time":       enc(`{"s":"x","k":["t","yesterday"],"t":["i","1"]}`),
		"null payload":   enc(`{"s":"x","k":["z","boo"],"t":["i","1"]}`),
		"wrong shape":    enc(`{"s":"x","k":"i:1","t":["i","1"]}`),
		"padded base64":  base64.URLEncoding.EncodeToString([]byte(`{"s":"xy","k":["i","1"],"t":["i","1"]}`)),
		"trailing bytes": enc(`{"s":"x","k":["i","1"],"t":["i","1"]}`) + "!",
	} {
		t.Run(name, func(t *testing.T) {
			pos, err := DefaultCodec().Decode(cursor)
			assert.ErrorIs(t, err, ErrMalformedCursor)
			assert.Nil(t, pos)
		})
	}
}

func TestCodecUnsupportedValue(t *testing.T) {
	_, err := DefaultCodec().Encode(Position{Key: struct{ A int }{1}, TieBreak: int64(1)})
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	_, err = DefaultCodec().Encode(Position{Key: 1, TieBreak: []int{1}})
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

type shipID [3]byte

func shipIDType() ValueType {
	return ValueType{
		Kind:  "ship",
		Match: func(v any) bool { _, ok := v.(shipID); return ok },
		Format: func(v any) (string, error) {
			id := v.(shipID)
			return string(id[:]), nil
		},
		Parse: func(s string) (any, error) {
			if len(s) != 3 {
				return nil, errors.New("ship id must be 3 bytes")
			}
			var id shipID
			copy(id[:], s)
			return id, nil
		},
	}
}

func TestCodecCustomValueType(t *testing.T) {
	codec := NewCodec(shipIDType())

	cursor, err := codec.Encode(Position{Sort: "_id:1:_id", Key: shipID{'X', 'W', 'G'}, TieBreak: shipID{'X', 'W', 'G'}})
	require.NoError(t, err)

	pos, err := codec.Decode(cursor)
	require.NoError(t, err)
	assert.Equal(t, shipID{'X', 'W', 'G'}, pos.Key)

	// Without the type registered the cursor cannot be read back.
	_, err = DefaultCodec().Decode(cursor)
	assert.ErrorIs(t, err, ErrMalformedCursor)

	bad := base64.RawURLEncoding.EncodeToString([]byte(`{"s":"x","k":["ship","TOOLONG"],"t":["i","1"]}`))
	_, err = codec.Decode(bad)
	assert.ErrorIs(t, err, ErrMalformedCursor)
}

func TestCodecCustomValueTypeInvalidText(t *testing.T) {
	codec := NewCodec(shipIDType())

	_, err := codec.Encode(Position{Sort: "_id:1:_id", Key: shipID{'X', 0xff, 'G'}, TieBreak: int64(1)})
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestNewCodecPanics(t *testing.T) {
	assert.PanicsWithValue(t, "paging: incomplete value type", func() {
		NewCodec(ValueType{Kind: "ship"})
	})
	assert.Panics(t, func() {
		NewCodec(shipIDType(), shipIDType())
	})
	assert.Panics(t, func() {
		vt := shipIDType()
		vt.Kind = kindString
		NewCodec(vt)
	})
}

func TestCodecOpaque(t *testing.T) {
	cursor, err := DefaultCodec().Encode(Position{Sort: "name:1:_id", Key: "secret", TieBreak: int64(1)})
	require.NoError(t, err)
	assert.False(t, strings.Contains(cursor, "secret"))
}
