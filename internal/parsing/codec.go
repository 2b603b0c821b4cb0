// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package parsing

import (
	"encoding/json"

	"github.com/samber/oops"
)

// JSONCodec parses and serializes raw JSON documents as maps.
type JSONCodec interface {
	Parse(raw string) (map[string]any, error)
	Serialize(doc map[string]any) (string, error)
	Valid(raw string) bool
}

// StdCodec is the encoding/json backed codec.
type StdCodec struct{}

// Parse implements JSONCodec.
func (StdCodec) Parse(raw string) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, oops.Code("PARSING_BAD_JSON").
			Wrap(err)
	}
	return doc, nil
}

// Serialize implements JSONCodec.
func (StdCodec) Serialize(doc map[string]any) (string, error) {
	out, err := json.Marshal(doc)
	if err != nil {
		return "", oops.Code("PARSING_SERIALIZE_FAILED").
			Wrap(err)
	}
	return string(out), nil
}

// Valid implements JSONCodec.
func (StdCodec) Valid(raw string) bool {
	return json.Valid([]byte(raw))
}
