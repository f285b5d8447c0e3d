package store

import (
	"encoding/json"
	"fmt"
	"maps"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/models"
)

// Record is one stored row. Values have the shapes encoding/json produces:
// string, float64, bool, nil, []any and map[string]any.
type Record map[string]any

// ToRecord converts a struct (or any JSON-encodable value) into a Record.
func ToRecord(v any) (Record, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var r Record
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return r, nil
}

// Decode converts a record into T.
func Decode[T any](r Record) (T, error) {
	var out T
	b, err := json.Marshal(r)
	if err != nil {
		return out, fmt.Errorf("encode record: %w", err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("decode record: %w", err)
	}
	return out, nil
}

func DecodeAll[T any](rs []Record) ([]T, error) {
	out := make([]T, 0, len(rs))
	for _, r := range rs {
		v, err := Decode[T](r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// String returns the field as a string, or "" when absent or not a string.
func (r Record) String(field string) string {
	s, _ := r[field].(string)
	return s
}

// normalize brings a caller-supplied value into the shape stored values
// have, so that times, typed strings or ints compare equal to what JSON
// decoding produced. Times use the storage layout. Values that cannot be
// encoded are kept as is and fail when written.
func normalize(v any) any {
	switch x := v.(type) {
	case nil, string, float64, bool:
		return v
	case time.Time:
		return models.FormatTimestamp(x)
	case *time.Time:
		if x == nil {
			return nil
		}
		return models.FormatTimestamp(*x)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}

// normalizeRecord returns a normalized copy of r.
func normalizeRecord(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = normalize(v)
	}
	return out
}
