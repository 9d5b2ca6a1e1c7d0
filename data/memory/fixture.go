package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ncobase/relaypage/data"
)

// LoadJSON reads a JSON array of objects. Integral numbers become int64 and
// the rest float64, so fixtures compare the way typed stores do.
func LoadJSON(r io.Reader) ([]data.Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("memory: decode fixture: %w", err)
	}

	docs := make([]data.Document, len(raw))
	for i, doc := range raw {
		docs[i] = convertNumbers(doc).(map[string]any)
	}
	return docs, nil
}

// LoadFile reads a JSON fixture file.
func LoadFile(path string) ([]data.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadJSON(f)
}

func convertNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		f, _ := val.Float64()
		return f
	case map[string]any:
		for k, child := range val {
			val[k] = convertNumbers(child)
		}
		return val
	case []any:
		for i, child := range val {
			val[i] = convertNumbers(child)
		}
		return val
	}
	return v
}
