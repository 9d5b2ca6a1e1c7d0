package mongodb

import (
	"fmt"
	"strings"

	"github.com/ncobase/relaypage/paging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObjectIDType lets cursors carry ObjectID identity values.
var ObjectIDType = paging.ValueType{
	Kind: "oid",
	Match: func(v any) bool {
		_, ok := v.(primitive.ObjectID)
		return ok
	},
	Format: func(v any) (string, error) {
		return v.(primitive.ObjectID).Hex(), nil
	},
	Parse: func(s string) (any, error) {
		return primitive.ObjectIDFromHex(s)
	},
}

// DecimalType lets cursors carry Decimal128 sort keys.
var DecimalType = paging.ValueType{
	Kind: "dec",
	Match: func(v any) bool {
		_, ok := v.(primitive.Decimal128)
		return ok
	},
	Format: func(v any) (string, error) {
		return v.(primitive.Decimal128).String(), nil
	},
	Parse: func(s string) (any, error) {
		return primitive.ParseDecimal128(s)
	},
}

// DateTimeType keeps BSON datetimes distinct from time.Time in cursors.
var DateTimeType = paging.ValueType{
	Kind: "dt",
	Match: func(v any) bool {
		_, ok := v.(primitive.DateTime)
		return ok
	},
	Format: func(v any) (string, error) {
		return fmt.Sprint(int64(v.(primitive.DateTime))), nil
	},
	Parse: func(s string) (any, error) {
		var ms int64
		if _, err := fmt.Sscan(s, &ms); err != nil {
			return nil, err
		}
		return primitive.DateTime(ms), nil
	},
}

var codec = paging.NewCodec(ObjectIDType, DecimalType, DateTimeType)

// Codec returns the cursor codec for MongoDB documents.
func Codec() *paging.Codec {
	return codec
}

// LookupField resolves a dotted path inside a decoded document. Embedded
// documents may be bson.D, bson.M or plain maps.
func LookupField(doc any, path string) (any, error) {
	cur := doc
	for _, part := range strings.Split(path, ".") {
		var (
			next any
			ok   bool
		)
		switch d := cur.(type) {
		case bson.D:
			for _, e := range d {
				if e.Key == part {
					next, ok = e.Value, true
					break
				}
			}
		case bson.M:
			next, ok = d[part]
		case map[string]any:
			next, ok = d[part]
		default:
			v, err := paging.LookupField(cur, part)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", paging.ErrFieldNotFound, path)
			}
			next, ok = v, true
		}
		if !ok {
			return nil, fmt.Errorf("%w: %q", paging.ErrFieldNotFound, path)
		}
		cur = next
	}
	return cur, nil
}
