// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package credential

import (
	"context"

	"github.com/samber/oops"

	"github.com/keyward/keyward/internal/capability"
	"github.com/keyward/keyward/internal/clock"
	"github.com/keyward/keyward/internal/value"
)

// UserAgentParser turns a raw User-Agent header into its parsed parts.
type UserAgentParser interface {
	Parse(raw string) (value.UserAgent, error)
}

// LoginContext is the fingerprint of a login attempt: who, from which
// address, with which client. It is comparable, so two contexts are the
// same exactly when every component matches.
type LoginContext struct {
	userID    value.ID
	ipAddress value.IPAddr
	userAgent value.UserAgent
}

// UserID returns the attempting user's id.
func (c LoginContext) UserID() value.ID { return c.userID }

// IPAddress returns the source address.
func (c LoginContext) IPAddress() value.IPAddr { return c.ipAddress }

// UserAgent returns the parsed client fingerprint.
func (c LoginContext) UserAgent() value.UserAgent { return c.userAgent }

// IsZero reports whether the context is unpopulated.
func (c LoginContext) IsZero() bool {
	return c.userID.IsZero() && c.ipAddress.IsZero() && c.userAgent.IsZero()
}

// ContextObservation is the raw material of a login context as seen at
// the transport edge, before any parsing.
type ContextObservation struct {
	UserID    value.ID
	IPAddress string
	UserAgent string
}

// LoginContextFactory mints login contexts from raw observations. It
// owns the parsing of addresses and user-agent strings.
type LoginContextFactory struct {
	agents UserAgentParser
	now    clock.Clock
}

// NewLoginContextFactory builds a login context factory.
func NewLoginContextFactory(agents UserAgentParser, now clock.Clock) (*LoginContextFactory, error) {
	if agents == nil {
		return nil, oops.Code("CREDENTIAL_NIL_PARSER").
			Errorf("login context factory requires a user-agent parser")
	}
	return &LoginContextFactory{agents: agents, now: clock.Or(now)}, nil
}

// Kind implements capability.CreationFactory.
func (f *LoginContextFactory) Kind() capability.Kind { return capability.KindLoginContext }

// Create implements capability.CreationFactory.
func (f *LoginContextFactory) Create(ctx context.Context, req *capability.Requirement[ContextObservation]) (*capability.Proof[LoginContext], error) {
	grant, err := req.Redeem(f)
	if err != nil {
		return nil, err
	}
	obs := grant.Payload()
	if obs.UserID.IsZero() {
		return nil, oops.Code("CREDENTIAL_CONTEXT_NO_USER").
			Errorf("login context requires a user id")
	}
	addr, err := value.NewIPAddr(obs.IPAddress)
	if err != nil {
		return nil, err
	}
	agent, err := f.agents.Parse(obs.UserAgent)
	if err != nil {
		return nil, oops.Code("CREDENTIAL_AGENT_UNPARSED").
			With("user_agent", obs.UserAgent).
			Wrap(err)
	}
	return capability.Mint(grant, LoginContext{
		userID:    obs.UserID,
		ipAddress: addr,
		userAgent: agent,
	}, f.now)
}
