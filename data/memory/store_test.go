package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/ncobase/relaypage/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    int64   `bson:"_id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func items() []item {
	return []item{
		{1, "apple", 3}, {2, "bread", 2.5}, {3, "cheese", 9}, {4, "dates", 3}, {5, "eggs", 4},
	}
}

func ids(records []item) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestStoreFind(t *testing.T) {
	ctx := context.Background()
	s := New(items())

	got, err := s.Find(ctx, query.Find{
		Sort: []query.Order{{Field: "price", Desc: true}, {Field: "_id", Desc: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5, 4, 1, 2}, ids(got))

	got, err = s.Find(ctx, query.Find{
		Filter:   query.Gte("price", 3),
		Boundary: query.Or{query.Gt("price", 3), query.And{query.Eq("price", 3), query.Gt("_id", 1)}},
		Sort:     []query.Order{{Field: "price"}, {Field: "_id"}},
		Limit:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, ids(got))
}

func TestStoreCount(t *testing.T) {
	s := New(items())
	n, err := s.Count(context.Background(), query.In("name", []string{"apple", "eggs", "figs"}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = s.Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestStoreInsertAndCalls(t *testing.T) {
	ctx := context.Background()
	s := New(items())
	s.Insert(item{6, "figs", 1})
	assert.Equal(t, 6, s.Len())

	_, _ = s.Find(ctx, query.Find{})
	_, _ = s.Count(ctx, nil)
	_, _ = s.Count(ctx, nil)
	finds, counts := s.Calls()
	assert.Equal(t, int64(1), finds)
	assert.Equal(t, int64(2), counts)
}

func TestStoreMissingFields(t *testing.T) {
	docs := []map[string]any{{"_id": 1, "rank": 2}, {"_id": 2}, {"_id": 3, "rank": 1}}
	s := New(docs)

	got, err := s.Find(context.Background(), query.Find{Sort: []query.Order{{Field: "rank"}, {Field: "_id"}}})
	require.NoError(t, err)
	assert.Equal(t, 2, got[0]["_id"])
	assert.Equal(t, 3, got[1]["_id"])

	n, err := s.Count(context.Background(), query.Eq("rank", nil))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStoreFieldFunc(t *testing.T) {
	s := New(items(), WithFieldFunc(func(r item, field string) (any, error) {
		if field == "cents" {
			return int64(r.Price * 100), nil
		}
		return r.ID, nil
	}))

	got, err := s.Find(context.Background(), query.Find{Filter: query.Lt("cents", 300)})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(got))

	v, err := s.FieldValue(items()[0], "cents")
	require.NoError(t, err)
	assert.Equal(t, int64(300), v)
}

func TestStoreSortFieldError(t *testing.T) {
	broken := errors.New("unreadable price")
	s := New(items(), WithFieldFunc(func(r item, field string) (any, error) {
		if field == "price" && r.ID == 2 {
			return nil, broken
		}
		return r.ID, nil
	}))

	_, err := s.Find(context.Background(), query.Find{Sort: []query.Order{{Field: "price"}}})
	assert.ErrorIs(t, err, broken)
}

func TestStoreCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(items())
	_, err := s.Find(ctx, query.Find{})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.Count(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStoreInvalidFilter(t *testing.T) {
	_, err := New(items()).Count(context.Background(), query.In("name", "apple"))
	assert.Error(t, err)
}
