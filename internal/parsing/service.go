// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package parsing

import (
	"context"
	"strings"

	"github.com/samber/oops"

	"github.com/keyward/keyward/internal/schema"
)

// Service parses any incoming token string. Three dot-separated
// segments mark a JWT; anything else is treated as an opaque id.
type Service struct {
	jwts    *JWTParser
	opaques *OpaqueParser
}

// NewService builds a parsing service over both parsers.
func NewService(jwts *JWTParser, opaques *OpaqueParser) (*Service, error) {
	if jwts == nil || opaques == nil {
		return nil, oops.Code("PARSING_NIL_PARSER").
			Errorf("parsing service requires both parsers")
	}
	return &Service{jwts: jwts, opaques: opaques}, nil
}

// Parse dispatches the raw token to the right parser and returns its
// payload record.
func (s *Service) Parse(ctx context.Context, raw string) (schema.Record, error) {
	if raw == "" {
		return schema.Record{}, oops.Code("PARSING_EMPTY_TOKEN").
			Errorf("empty token string")
	}
	if isJWT(raw) {
		return s.jwts.Parse(raw)
	}
	return s.opaques.Parse(ctx, raw)
}

func isJWT(raw string) bool {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}
	return true
}
