package mongodb

import (
	"testing"
	"time"

	"github.com/ncobase/relaypage/paging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCodecRoundTrip(t *testing.T) {
	id := primitive.NewObjectID()
	dec, err := primitive.ParseDecimal128("19.99")
	require.NoError(t, err)
	dt := primitive.NewDateTimeFromTime(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))

	for _, key := range []any{id, dec, dt, "plain", int64(3)} {
		cursor, err := Codec().Encode(paging.Position{Sort: "k:1:_id", Key: key, TieBreak: id})
		require.NoError(t, err)

		pos, err := Codec().Decode(cursor)
		require.NoError(t, err)
		assert.Equal(t, key, pos.Key)
		assert.Equal(t, id, pos.TieBreak)
	}
}

func TestCodecRejectsBadObjectID(t *testing.T) {
	cursor, err := paging.NewCodec(paging.ValueType{
		Kind:   "oid",
		Match:  func(v any) bool { _, ok := v.(string); return ok },
		Format: func(v any) (string, error) { return v.(string), nil },
		Parse:  func(s string) (any, error) { return s, nil },
	}).Encode(paging.Position{Key: "not-hex", TieBreak: "zz"})
	require.NoError(t, err)

	_, err = Codec().Decode(cursor)
	assert.ErrorIs(t, err, paging.ErrMalformedCursor)
}

type product struct {
	ID    primitive.ObjectID `bson:"_id"`
	Price float64            `bson:"price"`
}

func TestLookupField(t *testing.T) {
	id := primitive.NewObjectID()
	doc := map[string]any{
		"_id":   id,
		"stats": bson.D{{Key: "size", Value: int32(7)}, {Key: "tags", Value: bson.M{"color": "red"}}},
	}

	v, err := LookupField(doc, "_id")
	require.NoError(t, err)
	assert.Equal(t, id, v)

	v, err = LookupField(doc, "stats.size")
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)

	v, err = LookupField(doc, "stats.tags.color")
	require.NoError(t, err)
	assert.Equal(t, "red", v)

	_, err = LookupField(doc, "stats.weight")
	assert.ErrorIs(t, err, paging.ErrFieldNotFound)

	v, err = LookupField(product{ID: id, Price: 2}, "price")
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	_, err = LookupField(product{}, "name")
	assert.ErrorIs(t, err, paging.ErrFieldNotFound)
}
