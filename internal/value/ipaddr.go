// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package value

import (
	"net/netip"
	"strings"

	"github.com/samber/oops"
)

// IPAddr is a validated IPv4 or IPv6 address.
type IPAddr struct {
	addr netip.Addr
}

// NewIPAddr parses raw as an IP address.
func NewIPAddr(raw string) (IPAddr, error) {
	parsed, err := netip.ParseAddr(strings.TrimSpace(raw))
	if err != nil {
		return IPAddr{}, oops.Code("VALUE_INVALID_IP").
			With("ip", raw).
			Wrap(err)
	}
	return IPAddr{addr: parsed}, nil
}

// String returns the canonical textual form.
func (ip IPAddr) String() string {
	return ip.addr.String()
}

// IsZero reports whether the value is the uninitialized IPAddr.
func (ip IPAddr) IsZero() bool {
	return !ip.addr.IsValid()
}
