// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package credential

import "log/slog"

// RiskService decides whether a login needs a second factor. The rule
// is deliberately strict: any context not previously seen, byte for
// byte, is treated as high risk.
type RiskService struct {
	metrics *Metrics
}

// NewRiskService builds a risk service. Metrics may be nil.
func NewRiskService(metrics *Metrics) *RiskService {
	return &RiskService{metrics: metrics}
}

// MFARequired reports whether the current context demands a second
// factor. An empty history always does.
func (s *RiskService) MFARequired(history []LoginContext, current LoginContext) bool {
	for _, seen := range history {
		if seen == current {
			s.metrics.recordMFADecision("known_context")
			return false
		}
	}
	s.metrics.recordMFADecision("mfa_required")
	slog.Debug("unrecognized login context, requiring mfa",
		"user_id", current.UserID().String(),
		"ip", current.IPAddress().String(),
	)
	return true
}
