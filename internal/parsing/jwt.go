// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package parsing

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"

	"github.com/keyward/keyward/internal/schema"
)

// JWTParser verifies HMAC-signed tokens and recovers their claims.
type JWTParser struct {
	secret []byte
}

// NewJWTParser builds a JWT parser over a shared HMAC secret.
func NewJWTParser(secret []byte) (*JWTParser, error) {
	if len(secret) == 0 {
		return nil, oops.Code("PARSING_NO_SECRET").
			Errorf("jwt parser requires a signing secret")
	}
	return &JWTParser{secret: secret}, nil
}

// Parse verifies the token signature and returns the claims as a record.
// Signature failures and non-HMAC algorithms are rejected.
func (p *JWTParser) Parse(raw string) (schema.Record, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, oops.Code("PARSING_BAD_ALG").
				With("alg", t.Method.Alg()).
				Errorf("unexpected signing method")
		}
		return p.secret, nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil {
		return schema.Record{}, oops.Code("PARSING_JWT_INVALID").
			Wrap(err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return schema.Record{}, oops.Code("PARSING_JWT_INVALID").
			Errorf("token claims are not a map")
	}
	return schema.NewRecord(map[string]any(claims))
}
