package paging

import (
	"fmt"
	"reflect"
	"strings"
)

// LookupField resolves a dotted path such as "stats.size" inside record.
// Maps with string keys, structs and pointers to either are walked. Struct
// fields are matched by bson tag, then json tag, then case-insensitive name.
func LookupField(record any, path string) (any, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrFieldNotFound)
	}
	cur := reflect.ValueOf(record)
	for _, part := range strings.Split(path, ".") {
		next, ok := step(cur, part)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, path)
		}
		cur = next
	}
	if !cur.IsValid() {
		return nil, nil
	}
	return cur.Interface(), nil
}

func step(v reflect.Value, name string) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return reflect.Value{}, false
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		val := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		if !val.IsValid() {
			return reflect.Value{}, false
		}
		return val, true
	case reflect.Struct:
		return structField(v, name)
	}
	return reflect.Value{}, false
}

func structField(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	fallback := -1
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if tagName(f, "bson") == name || tagName(f, "json") == name {
			return v.Field(i), true
		}
		if fallback < 0 && strings.EqualFold(f.Name, name) {
			fallback = i
		}
	}
	if fallback >= 0 {
		return v.Field(fallback), true
	}
	// inline / embedded structs
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous || strings.Contains(f.Tag.Get("bson"), "inline") {
			if fv, ok := step(v.Field(i), name); ok {
				return fv, true
			}
		}
	}
	return reflect.Value{}, false
}

func tagName(f reflect.StructField, key string) string {
	tag, ok := f.Tag.Lookup(key)
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	return name
}
