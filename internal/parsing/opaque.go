// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package parsing

import (
	"context"
	"errors"

	"github.com/samber/oops"

	"github.com/keyward/keyward/internal/schema"
)

// ErrPayloadNotFound is returned by repository lookups that matched no
// stored token payload.
var ErrPayloadNotFound = errors.New("token payload not found")

// TokenRepository finds the stored payload document for an opaque token
// id. Implementations return ErrPayloadNotFound (possibly wrapped) when
// the id is unknown.
type TokenRepository interface {
	FindPayloadByID(ctx context.Context, tokenID string) (string, error)
}

// OpaqueParser resolves opaque token identifiers to their server-side
// payloads.
type OpaqueParser struct {
	payloads TokenRepository
	codec    JSONCodec
}

// NewOpaqueParser builds an opaque token parser. A nil codec uses the
// stdlib codec.
func NewOpaqueParser(payloads TokenRepository, codec JSONCodec) (*OpaqueParser, error) {
	if payloads == nil {
		return nil, oops.Code("PARSING_NIL_REPOSITORY").
			Errorf("opaque parser requires a token repository")
	}
	if codec == nil {
		codec = StdCodec{}
	}
	return &OpaqueParser{payloads: payloads, codec: codec}, nil
}

// Parse looks up the payload for the token id and decodes it.
func (p *OpaqueParser) Parse(ctx context.Context, tokenID string) (schema.Record, error) {
	raw, err := p.payloads.FindPayloadByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, ErrPayloadNotFound) {
			return schema.Record{}, oops.Code("PARSING_UNKNOWN_TOKEN").
				With("token_id", tokenID).
				Wrap(err)
		}
		return schema.Record{}, oops.Code("PARSING_LOOKUP_FAILED").
			With("token_id", tokenID).
			Wrap(err)
	}
	doc, err := p.codec.Parse(raw)
	if err != nil {
		return schema.Record{}, err
	}
	return schema.NewRecord(doc)
}
