// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package credential

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts credential validation outcomes.
type Metrics struct {
	RegistrationsTotal *prometheus.CounterVec
	LoginsTotal        *prometheus.CounterVec
	MFARequiredTotal   *prometheus.CounterVec
}

// NewMetrics creates and registers the credential metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RegistrationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keyward_registrations_total",
				Help: "Total number of registration attempts by result",
			},
			[]string{"result"},
		),
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keyward_logins_total",
				Help: "Total number of login attempts by result",
			},
			[]string{"result"},
		),
		MFARequiredTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keyward_mfa_decisions_total",
				Help: "Total number of MFA risk decisions by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(m.RegistrationsTotal)
	reg.MustRegister(m.LoginsTotal)
	reg.MustRegister(m.MFARequiredTotal)

	return m
}

func (m *Metrics) recordRegistration(result string) {
	if m == nil {
		return
	}
	m.RegistrationsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) recordLogin(result string) {
	if m == nil {
		return
	}
	m.LoginsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) recordMFADecision(outcome string) {
	if m == nil {
		return
	}
	m.MFARequiredTotal.WithLabelValues(outcome).Inc()
}
