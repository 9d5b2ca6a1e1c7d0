package mongodb

import (
	"fmt"

	"github.com/ncobase/relaypage/query"
	"go.mongodb.org/mongo-driver/bson"
)

var operators = map[query.Op]string{
	query.OpEq:  "$eq",
	query.OpNe:  "$ne",
	query.OpGt:  "$gt",
	query.OpGte: "$gte",
	query.OpLt:  "$lt",
	query.OpLte: "$lte",
	query.OpIn:  "$in",
	query.OpNin: "$nin",
}

// matchNothing is a filter no document satisfies
var matchNothing = bson.D{{Key: "$nor", Value: bson.A{bson.D{}}}}

// Filter translates an expression into a MongoDB query document.
func Filter(e query.Expr) (bson.D, error) {
	switch v := e.(type) {
	case nil:
		return bson.D{}, nil
	case query.Cond:
		return condition(v)
	case query.And:
		if len(v) == 0 {
			return bson.D{}, nil
		}
		parts, err := filters(v)
		if err != nil {
			return nil, err
		}
		return bson.D{{Key: "$and", Value: parts}}, nil
	case query.Or:
		if len(v) == 0 {
			return matchNothing, nil
		}
		parts, err := filters(v)
		if err != nil {
			return nil, err
		}
		return bson.D{{Key: "$or", Value: parts}}, nil
	}
	return nil, fmt.Errorf("mongodb: unsupported expression %T", e)
}

func filters(exprs []query.Expr) (bson.A, error) {
	out := make(bson.A, 0, len(exprs))
	for _, e := range exprs {
		d, err := Filter(e)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func condition(c query.Cond) (bson.D, error) {
	op, ok := operators[c.Op]
	if !ok {
		return nil, fmt.Errorf("mongodb: unsupported operator %q", c.Op)
	}

	value := c.Value
	switch c.Op {
	case query.OpIn, query.OpNin:
		values, err := query.Values(c.Value)
		if err != nil {
			return nil, err
		}
		value = bson.A(values)
	case query.OpGt, query.OpGte, query.OpLt, query.OpLte:
		// Range operators on null would be type-bracketed to nothing; null
		// orders below every value instead.
		if c.Value == nil {
			return nullRange(c), nil
		}
	}
	return bson.D{{Key: c.Field, Value: bson.D{{Key: op, Value: value}}}}, nil
}

func nullRange(c query.Cond) bson.D {
	switch c.Op {
	case query.OpGt:
		return bson.D{{Key: c.Field, Value: bson.D{{Key: "$ne", Value: nil}}}}
	case query.OpGte:
		return bson.D{}
	case query.OpLte:
		return bson.D{{Key: c.Field, Value: bson.D{{Key: "$eq", Value: nil}}}}
	}
	return matchNothing
}

// Sort translates sort keys into a MongoDB sort document.
func Sort(orders []query.Order) bson.D {
	out := make(bson.D, 0, len(orders))
	for _, o := range orders {
		dir := 1
		if o.Desc {
			dir = -1
		}
		out = append(out, bson.E{Key: o.Field, Value: dir})
	}
	return out
}
