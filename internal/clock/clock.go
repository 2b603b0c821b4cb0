// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

// Package clock provides the wall-clock abstraction injected into every
// component that performs time-based checks (expiry, cooldown), so those
// checks stay deterministic under test.
package clock

import "time"

// Clock returns the current time. The zero value is not usable; callers
// that receive a nil Clock should fall back to System().
type Clock func() time.Time

// System returns a Clock backed by time.Now.
func System() Clock {
	return time.Now
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// Or returns c if non-nil, otherwise the system clock.
func Or(c Clock) Clock {
	if c == nil {
		return System()
	}
	return c
}
