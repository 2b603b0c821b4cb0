// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

// Package core assembles the authentication domain: it wires factories
// into sealed registries behind one orchestrator and exposes the
// high-level flows (register, login, session opening, token rotation).
package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/oops"

	"github.com/keyward/keyward/internal/capability"
	"github.com/keyward/keyward/internal/clock"
	"github.com/keyward/keyward/internal/config"
	"github.com/keyward/keyward/internal/credential"
	"github.com/keyward/keyward/internal/hashing"
	"github.com/keyward/keyward/internal/identity"
	"github.com/keyward/keyward/internal/parsing"
	"github.com/keyward/keyward/internal/schema"
	"github.com/keyward/keyward/internal/session"
	"github.com/keyward/keyward/internal/token"
	"github.com/keyward/keyward/internal/value"
)

// Collaborators are the out-of-core dependencies the domain consumes.
type Collaborators struct {
	Users         identity.Repository
	TokenPayloads parsing.TokenRepository
	UserAgents    credential.UserAgentParser
	JWTSecret     []byte
	Metrics       prometheus.Registerer
	Clock         clock.Clock
}

// Core is the assembled domain. Build it once at startup with New; the
// registries are sealed before it is returned, so it is safe to share.
type Core struct {
	cfg          config.Config
	orchestrator *capability.Orchestrator

	users   identity.Repository
	hasher  hashing.Hasher
	schemas *schema.Service
	parser  *parsing.Service

	registration *credential.RegistrationService
	login        *credential.LoginService
	risk         *credential.RiskService

	userCreation    *identity.CreationFactory
	sessionCreation *session.CreationFactory
	contextCreation *credential.LoginContextFactory
	tokenCreation   map[token.Kind]*token.CreationFactory

	userReconstitution    *identity.ReconstitutionFactory
	sessionReconstitution *session.ReconstitutionFactory
	tokenReconstitution   map[token.Kind]*token.ReconstitutionFactory
}

// New assembles and seals the domain core.
func New(cfg config.Config, deps Collaborators) (*Core, error) {
	if deps.Users == nil {
		return nil, oops.Code("CORE_NIL_REPOSITORY").
			Errorf("core requires a user repository")
	}
	now := clock.Or(deps.Clock)

	hasher := hashing.NewArgon2id()
	var metrics *credential.Metrics
	if deps.Metrics != nil {
		metrics = credential.NewMetrics(deps.Metrics)
	}

	schemas, err := schema.NewService()
	if err != nil {
		return nil, err
	}

	c := &Core{
		cfg:     cfg,
		users:   deps.Users,
		hasher:  hasher,
		schemas: schemas,
	}

	if len(deps.JWTSecret) > 0 && deps.TokenPayloads != nil {
		jwts, err := parsing.NewJWTParser(deps.JWTSecret)
		if err != nil {
			return nil, err
		}
		opaques, err := parsing.NewOpaqueParser(deps.TokenPayloads, nil)
		if err != nil {
			return nil, err
		}
		c.parser, err = parsing.NewService(jwts, opaques)
		if err != nil {
			return nil, err
		}
	}

	policy := identity.Policy{
		LockoutThreshold: cfg.Identity.LockoutThreshold,
		ResetCooldown:    cfg.Identity.ResetCooldown,
	}

	c.registration, err = credential.NewRegistrationService(deps.Users, metrics, now)
	if err != nil {
		return nil, err
	}
	c.login, err = credential.NewLoginService(deps.Users, hasher, metrics, now)
	if err != nil {
		return nil, err
	}
	c.risk = credential.NewRiskService(metrics)

	c.userCreation, err = identity.NewCreationFactory(hasher, policy, now)
	if err != nil {
		return nil, err
	}
	c.userReconstitution = identity.NewReconstitutionFactory(policy, now)
	c.sessionCreation = session.NewCreationFactory(cfg.Session.TTL, now)
	c.sessionReconstitution = session.NewReconstitutionFactory(now)
	if deps.UserAgents != nil {
		c.contextCreation, err = credential.NewLoginContextFactory(deps.UserAgents, now)
		if err != nil {
			return nil, err
		}
	}

	c.tokenCreation = make(map[token.Kind]*token.CreationFactory, len(token.Kinds()))
	c.tokenReconstitution = make(map[token.Kind]*token.ReconstitutionFactory, len(token.Kinds()))
	for _, kind := range token.Kinds() {
		cf, err := token.NewCreationFactory(kind, tokenTTLFor(cfg.Token, kind), now)
		if err != nil {
			return nil, err
		}
		rf, err := token.NewReconstitutionFactory(kind, now)
		if err != nil {
			return nil, err
		}
		c.tokenCreation[kind] = cf
		c.tokenReconstitution[kind] = rf
	}

	c.orchestrator, err = buildOrchestrator(c)
	if err != nil {
		return nil, err
	}

	slog.Info("domain core assembled",
		"lockout_threshold", policy.LockoutThreshold,
		"session_ttl", cfg.Session.TTL,
	)
	return c, nil
}

func tokenTTLFor(cfg config.TokenConfig, kind token.Kind) time.Duration {
	switch kind {
	case token.KindAccess:
		return cfg.AccessTTL
	case token.KindRefresh:
		return cfg.RefreshTTL
	case token.KindVerification:
		return cfg.VerificationTTL
	case token.KindPasswordReset:
		return cfg.PasswordResetTTL
	case token.KindMFA:
		return cfg.MFATTL
	default:
		return 0
	}
}

func buildOrchestrator(c *Core) (*capability.Orchestrator, error) {
	creation := capability.NewRegistry()
	reconstitution := capability.NewRegistry()

	creators := []struct {
		kind    capability.Kind
		factory any
	}{
		{capability.KindUser, c.userCreation},
		{capability.KindSession, c.sessionCreation},
	}
	if c.contextCreation != nil {
		creators = append(creators, struct {
			kind    capability.Kind
			factory any
		}{capability.KindLoginContext, c.contextCreation})
	}
	for _, entry := range creators {
		if err := creation.Register(entry.kind, entry.factory); err != nil {
			return nil, err
		}
	}
	for kind, factory := range c.tokenCreation {
		if err := creation.Register(kind.CapabilityKind(), factory); err != nil {
			return nil, err
		}
	}

	if err := reconstitution.Register(capability.KindUser, c.userReconstitution); err != nil {
		return nil, err
	}
	if err := reconstitution.Register(capability.KindSession, c.sessionReconstitution); err != nil {
		return nil, err
	}
	for kind, factory := range c.tokenReconstitution {
		if err := reconstitution.Register(kind.CapabilityKind(), factory); err != nil {
			return nil, err
		}
	}

	creation.Seal()
	reconstitution.Seal()
	return capability.NewOrchestrator(creation, reconstitution)
}

// Orchestrator returns the sealed capability orchestrator.
func (c *Core) Orchestrator() *capability.Orchestrator { return c.orchestrator }

// Schemas returns the persisted-state validation service.
func (c *Core) Schemas() *schema.Service { return c.schemas }

// Parser returns the token-string parsing service, or nil when the core
// was assembled without parsing collaborators.
func (c *Core) Parser() *parsing.Service { return c.parser }

// Risk returns the MFA risk service.
func (c *Core) Risk() *credential.RiskService { return c.risk }

// Register validates a sign-up attempt, creates the user through the
// capability protocol, and persists it.
func (c *Core) Register(ctx context.Context, rawEmail, rawPassword string) (*identity.User, error) {
	proof, err := c.registration.Validate(ctx, rawEmail, rawPassword)
	if err != nil {
		return nil, err
	}
	req, err := capability.For[identity.Registration](capability.KindUser).
		BoundTo(c.userCreation).
		Carrying(proof)
	if err != nil {
		return nil, err
	}
	minted, err := capability.Create[*identity.User](ctx, c.orchestrator, req)
	if err != nil {
		return nil, err
	}
	user := minted.Aggregate()
	if err := c.users.Save(ctx, user); err != nil {
		return nil, oops.Code("CORE_SAVE_FAILED").
			With("user_id", user.ID().String()).
			Wrap(err)
	}
	return user, nil
}

// Login judges a login attempt and maintains the failure counter. On
// success the counter resets and a fresh session opens; on failure the
// counter increments when the account exists.
func (c *Core) Login(ctx context.Context, rawEmail, rawPassword string) (credential.AuthProof, *session.Session, error) {
	email, err := value.NewEmail(rawEmail)
	if err != nil {
		return nil, nil, err
	}
	password, err := value.NewPassword(rawPassword)
	if err != nil {
		return nil, nil, err
	}

	outcome, err := c.login.Validate(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	success, ok := outcome.(*credential.SuccessfulAuthProof)
	if !ok {
		if err := c.recordFailure(ctx, outcome); err != nil {
			return nil, nil, err
		}
		return outcome, nil, nil
	}

	user := success.User()
	if err := user.ResetFailedLogins(success); err != nil {
		return nil, nil, err
	}
	if err := c.users.Save(ctx, user); err != nil {
		return nil, nil, oops.Code("CORE_SAVE_FAILED").
			With("user_id", user.ID().String()).
			Wrap(err)
	}

	req, err := capability.For[*credential.SuccessfulAuthProof](capability.KindSession).
		BoundTo(c.sessionCreation).
		Carrying(success)
	if err != nil {
		return nil, nil, err
	}
	minted, err := capability.Create[*session.Session](ctx, c.orchestrator, req)
	if err != nil {
		return nil, nil, err
	}
	return success, minted.Aggregate(), nil
}

func (c *Core) recordFailure(ctx context.Context, outcome credential.AuthProof) error {
	userID, known := outcome.AttestedUserID()
	if !known {
		return nil
	}
	user, err := c.users.FindByID(ctx, userID)
	if err != nil {
		return oops.Code("CORE_LOOKUP_FAILED").
			With("user_id", userID.String()).
			Wrap(err)
	}
	if err := user.RecordFailedLogin(outcome); err != nil {
		return err
	}
	if err := c.users.Save(ctx, user); err != nil {
		return oops.Code("CORE_SAVE_FAILED").
			With("user_id", user.ID().String()).
			Wrap(err)
	}
	return nil
}

// IssueToken mints a fresh token of the given kind through the
// capability protocol.
func (c *Core) IssueToken(ctx context.Context, kind token.Kind, payload token.CreationPayload) (*token.Token, error) {
	factory, ok := c.tokenCreation[kind]
	if !ok {
		return nil, oops.Code("TOKEN_BAD_KIND").
			With("kind", int(kind)).
			Errorf("no factory for token kind")
	}
	req, err := capability.For[token.CreationPayload](kind.CapabilityKind()).
		BoundTo(factory).
		Carrying(payload)
	if err != nil {
		return nil, err
	}
	minted, err := capability.Create[*token.Token](ctx, c.orchestrator, req)
	if err != nil {
		return nil, err
	}
	return minted.Aggregate(), nil
}

// RotateRefresh exchanges a live refresh token for a fresh
// access/refresh pair. The old token is revoked before the new pair is
// minted, so a second rotation with the same token fails.
func (c *Core) RotateRefresh(ctx context.Context, old *token.Token, sessionID, ownerID value.ID) (access, refresh *token.Token, err error) {
	proof, ok := old.ValidateFor(sessionID, ownerID)
	if !ok {
		return nil, nil, oops.Code("TOKEN_ROTATION_REFUSED").
			With("token_id", old.ID().String()).
			Errorf("refresh token did not validate for rotation")
	}
	if _, err := old.Deactivate(); err != nil {
		return nil, nil, err
	}
	access, err = c.IssueToken(ctx, token.KindAccess, token.CreationPayload{UserID: proof.OwnerID()})
	if err != nil {
		return nil, nil, err
	}
	refresh, err = c.IssueToken(ctx, token.KindRefresh, token.CreationPayload{SessionID: proof.SessionID()})
	if err != nil {
		return nil, nil, err
	}
	return access, refresh, nil
}
