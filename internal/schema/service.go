// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

// Package schema is the boundary between raw persisted state and the
// domain: untyped maps go in, validated typed field records come out.
// Records are consumed only by reconstitution factories.
package schema

import (
	"embed"
	"encoding/json"

	"github.com/samber/oops"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Service validates raw persisted maps against their JSON Schemas and
// extracts typed records. Construct once at bootstrap; safe for concurrent
// use afterwards.
type Service struct {
	user    *jschema.Schema
	session *jschema.Schema
	token   *jschema.Schema
}

// NewService compiles the embedded schemas.
func NewService() (*Service, error) {
	user, err := compileSchema("schemas/user.json")
	if err != nil {
		return nil, err
	}
	session, err := compileSchema("schemas/session.json")
	if err != nil {
		return nil, err
	}
	token, err := compileSchema("schemas/token.json")
	if err != nil {
		return nil, err
	}
	return &Service{user: user, session: session, token: token}, nil
}

func compileSchema(name string) (*jschema.Schema, error) {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, oops.Code("SCHEMA_COMPILE_FAILED").With("schema", name).Wrap(err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, oops.Code("SCHEMA_COMPILE_FAILED").With("schema", name).Wrap(err)
	}

	c := jschema.NewCompiler()
	if err := c.AddResource(name, doc); err != nil {
		return nil, oops.Code("SCHEMA_COMPILE_FAILED").With("schema", name).Wrap(err)
	}
	compiled, err := c.Compile(name)
	if err != nil {
		return nil, oops.Code("SCHEMA_COMPILE_FAILED").With("schema", name).Wrap(err)
	}
	return compiled, nil
}

func validated(sch *jschema.Schema, name string, raw map[string]any) (Record, error) {
	if err := sch.Validate(mapToJSONTypes(raw)); err != nil {
		return Record{}, oops.Code("SCHEMA_INVALID").
			With("schema", name).
			Wrap(err)
	}
	return NewRecord(raw)
}

// mapToJSONTypes normalizes Go integer values to the float64 form the
// schema validator expects from decoded JSON.
func mapToJSONTypes(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = mapToJSONTypes(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = mapToJSONTypes(item)
		}
		return out
	case int:
		return float64(val)
	case int64:
		return float64(val)
	default:
		return val
	}
}

// User validates raw against the user schema and extracts a UserRecord.
func (s *Service) User(raw map[string]any) (UserRecord, error) {
	rec, err := validated(s.user, "user", raw)
	if err != nil {
		return UserRecord{}, err
	}

	out := UserRecord{}
	if out.ID, err = rec.String("id"); err != nil {
		return UserRecord{}, err
	}
	if out.Email, err = rec.String("email"); err != nil {
		return UserRecord{}, err
	}
	if out.PasswordHash, err = rec.String("passwordHash"); err != nil {
		return UserRecord{}, err
	}
	if out.Verified, err = rec.Bool("verified"); err != nil {
		return UserRecord{}, err
	}
	if out.FailedLoginAttempts, err = rec.Int("failedLoginAttempts"); err != nil {
		return UserRecord{}, err
	}
	if out.CreatedAt, err = rec.Time("createdAt"); err != nil {
		return UserRecord{}, err
	}
	if out.UpdatedAt, err = rec.Time("updatedAt"); err != nil {
		return UserRecord{}, err
	}
	if out.LastPasswordResetRequestAt, err = rec.OptionalTime("lastPasswordResetRequestAt"); err != nil {
		return UserRecord{}, err
	}
	return out, nil
}

// Session validates raw against the session schema and extracts a
// SessionRecord.
func (s *Service) Session(raw map[string]any) (SessionRecord, error) {
	rec, err := validated(s.session, "session", raw)
	if err != nil {
		return SessionRecord{}, err
	}

	out := SessionRecord{}
	if out.ID, err = rec.String("id"); err != nil {
		return SessionRecord{}, err
	}
	if out.UserID, err = rec.String("userId"); err != nil {
		return SessionRecord{}, err
	}
	if out.CreatedAt, err = rec.Time("createdAt"); err != nil {
		return SessionRecord{}, err
	}
	if out.LastActivityAt, err = rec.Time("lastActivityAt"); err != nil {
		return SessionRecord{}, err
	}
	if out.ExpiresAt, err = rec.Time("expiresAt"); err != nil {
		return SessionRecord{}, err
	}
	if out.Revoked, err = rec.Bool("revoked"); err != nil {
		return SessionRecord{}, err
	}
	return out, nil
}

// Token validates raw against the token schema and extracts a TokenRecord.
// Pin fields (userId, sessionId, code) stay optional here; the
// reconstitution factory for each kind enforces which must be present.
func (s *Service) Token(raw map[string]any) (TokenRecord, error) {
	rec, err := validated(s.token, "token", raw)
	if err != nil {
		return TokenRecord{}, err
	}

	out := TokenRecord{}
	if out.ID, err = rec.String("id"); err != nil {
		return TokenRecord{}, err
	}
	if out.Kind, err = rec.String("kind"); err != nil {
		return TokenRecord{}, err
	}
	if out.IssuedAt, err = rec.Time("issuedAt"); err != nil {
		return TokenRecord{}, err
	}
	if out.ExpiresAt, err = rec.Time("expiresAt"); err != nil {
		return TokenRecord{}, err
	}
	if out.Revoked, err = rec.Bool("revoked"); err != nil {
		return TokenRecord{}, err
	}
	if rec.Has("userId") {
		if out.UserID, err = rec.String("userId"); err != nil {
			return TokenRecord{}, err
		}
	}
	if rec.Has("sessionId") {
		if out.SessionID, err = rec.String("sessionId"); err != nil {
			return TokenRecord{}, err
		}
	}
	if rec.Has("code") {
		code, codeErr := rec.Int("code")
		if codeErr != nil {
			return TokenRecord{}, codeErr
		}
		out.Code = &code
	}
	return out, nil
}
