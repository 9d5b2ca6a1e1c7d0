package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapGetter(doc map[string]any) Getter {
	return func(field string) (any, bool, error) {
		v, ok := doc[field]
		return v, ok, nil
	}
}

func TestMatch(t *testing.T) {
	doc := mapGetter(map[string]any{"type": "fruit", "price": 3.5, "stock": 12, "discontinued": nil})

	tests := []struct {
		name string
		expr Expr
		want bool
	}{
		{"nil matches all", nil, true},
		{"eq", Eq("type", "fruit"), true},
		{"eq across numeric kinds", Eq("stock", 12.0), true},
		{"ne", Ne("type", "fruit"), false},
		{"gt", Gt("price", 3), true},
		{"gte", Gte("price", 3.5), true},
		{"lt", Lt("stock", 12), false},
		{"lte", Lte("stock", 12), true},
		{"gt other kind", Gt("type", 1), false},
		{"gt null bound", Gt("price", nil), true},
		{"lt null bound", Lt("price", nil), false},
		{"missing field is null", Eq("color", nil), true},
		{"missing field range", Gt("color", 0), false},
		{"explicit null", Eq("discontinued", nil), true},
		{"in", In("type", []string{"vegetable", "fruit"}), true},
		{"in missing", In("type", []string{"bakery"}), false},
		{"nin", Nin("type", []string{"bakery"}), true},
		{"and", And{Eq("type", "fruit"), Gt("stock", 20)}, false},
		{"empty and", And{}, true},
		{"or", Or{Eq("type", "bakery"), Gt("stock", 10)}, true},
		{"empty or", Or{}, false},
		{"boundary", AnyOf(Gt("price", 3.5), AllOf(Eq("price", 3.5), Gt("stock", 11))), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(tt.expr, doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchErrors(t *testing.T) {
	boom := errors.New("boom")
	failing := func(string) (any, bool, error) { return nil, false, boom }

	_, err := Match(Eq("a", 1), failing)
	assert.ErrorIs(t, err, boom)

	_, err = Match(Or{Eq("a", 1)}, failing)
	assert.ErrorIs(t, err, boom)

	_, err = Match(In("a", 1), mapGetter(nil))
	assert.Error(t, err)

	_, err = Match(Cond{Field: "a", Op: "like"}, mapGetter(nil))
	assert.Error(t, err)

	_, err = Match(Eq("a", 1), nil)
	assert.Error(t, err)
}
