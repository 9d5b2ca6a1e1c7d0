package query

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"
)

// Normalize converts a scalar into its canonical comparable form:
// integer kinds become int64, float kinds float64, string kinds string and
// times are moved to UTC. Other values are returned unchanged.
func Normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case int64, float64, string, bool, []byte:
		return val
	case time.Time:
		return val.UTC()
	case *time.Time:
		if val == nil {
			return nil
		}
		return val.UTC()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return float64(u)
		}
		return int64(u)
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return Normalize(rv.Elem().Interface())
	}
	return v
}

// type ranks, lowest sorts first
const (
	rankNull = iota
	rankNumber
	rankString
	rankBytes
	rankBool
	rankTime
	rankOther
)

func rank(v any) int {
	switch v.(type) {
	case nil:
		return rankNull
	case int64, float64:
		return rankNumber
	case string:
		return rankString
	case []byte:
		return rankBytes
	case bool:
		return rankBool
	case time.Time:
		return rankTime
	}
	return rankOther
}

// Compare compares two values and returns -1, 0, or 1.
// Values of different kinds are ordered by kind:
// null < numbers < strings < bytes < bools < times < anything else.
// Integers and floats compare numerically with each other.
func Compare(a, b any) int {
	a, b = Normalize(a), Normalize(b)
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return compareInt(ra, rb)
	}

	switch av := a.(type) {
	case nil:
		return 0
	case int64:
		if bv, ok := b.(int64); ok {
			return compareInt64(av, bv)
		}
		return compareFloat(float64(av), b.(float64))
	case float64:
		if bv, ok := b.(int64); ok {
			return compareFloat(av, float64(bv))
		}
		return compareFloat(av, b.(float64))
	case string:
		return strings.Compare(av, b.(string))
	case []byte:
		return bytes.Compare(av, b.([]byte))
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	case time.Time:
		return av.Compare(b.(time.Time))
	}

	// Fall back to the printed form for opaque identity types.
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// Equal reports whether Compare(a, b) == 0.
func Equal(a, b any) bool {
	return Compare(a, b) == 0
}

func compareInt(a, b int) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

func compareInt64(a, b int64) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}
