// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package schema

import (
	"maps"
	"time"

	"github.com/samber/oops"
)

// Record is an immutable, defensively-accessed view over a raw key/value
// map, typically decoded JSON. Every accessor distinguishes a missing key
// (SCHEMA_MISSING_KEY) from a value of the wrong type
// (SCHEMA_TYPE_MISMATCH).
type Record struct {
	data map[string]any
}

// NewRecord wraps raw. The map is copied so later caller mutation cannot
// leak into the record.
func NewRecord(raw map[string]any) (Record, error) {
	if raw == nil {
		return Record{}, oops.Code("SCHEMA_MISSING_KEY").Errorf("raw map cannot be nil")
	}
	return Record{data: maps.Clone(raw)}, nil
}

// Has reports whether key is present with a non-nil value.
func (r Record) Has(key string) bool {
	v, ok := r.data[key]
	return ok && v != nil
}

func (r Record) lookup(key string) (any, error) {
	v, ok := r.data[key]
	if !ok || v == nil {
		return nil, oops.Code("SCHEMA_MISSING_KEY").
			With("key", key).
			Errorf("required key %q is missing", key)
	}
	return v, nil
}

func mismatch(key, want string, got any) error {
	return oops.Code("SCHEMA_TYPE_MISMATCH").
		With("key", key).
		With("want", want).
		Errorf("key %q holds %T, want %s", key, got, want)
}

// String returns the value at key as a string.
func (r Record) String(key string) (string, error) {
	v, err := r.lookup(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", mismatch(key, "string", v)
	}
	return s, nil
}

// Int returns the value at key as an int. JSON numbers arrive as float64;
// integral floats are accepted.
func (r Record) Int(key string) (int, error) {
	n, err := r.Int64(key)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Int64 returns the value at key as an int64.
func (r Record) Int64(key string) (int64, error) {
	v, err := r.lookup(key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != float64(int64(n)) {
			return 0, mismatch(key, "integer", v)
		}
		return int64(n), nil
	default:
		return 0, mismatch(key, "integer", v)
	}
}

// Bool returns the value at key as a bool.
func (r Record) Bool(key string) (bool, error) {
	v, err := r.lookup(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, mismatch(key, "boolean", v)
	}
	return b, nil
}

// Float64 returns the value at key as a float64.
func (r Record) Float64(key string) (float64, error) {
	v, err := r.lookup(key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, mismatch(key, "number", v)
	}
}

// Time returns the value at key as a timestamp. Accepts time.Time values
// and RFC 3339 strings.
func (r Record) Time(key string) (time.Time, error) {
	v, err := r.lookup(key)
	if err != nil {
		return time.Time{}, err
	}
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		parsed, parseErr := time.Parse(time.RFC3339, t)
		if parseErr != nil {
			return time.Time{}, oops.Code("SCHEMA_TYPE_MISMATCH").
				With("key", key).
				Wrap(parseErr)
		}
		return parsed, nil
	default:
		return time.Time{}, mismatch(key, "timestamp", v)
	}
}

// OptionalTime behaves like Time but returns nil when the key is absent.
func (r Record) OptionalTime(key string) (*time.Time, error) {
	if !r.Has(key) {
		return nil, nil
	}
	t, err := r.Time(key)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Raw returns a copy of the underlying map.
func (r Record) Raw() map[string]any {
	return maps.Clone(r.data)
}
