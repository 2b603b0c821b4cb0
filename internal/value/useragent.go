// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

package value

import (
	"strings"

	"github.com/samber/oops"
)

// UserAgent is the parsed (OS, browser, device) triple produced by the
// user-agent-parser collaborator. Two user agents are equal only when all
// three components are equal.
type UserAgent struct {
	os      string
	browser string
	device  string
}

// NewUserAgent constructs a parsed user agent. Components may carry the
// parser's "Unknown" placeholder but never be empty.
func NewUserAgent(os, browser, device string) (UserAgent, error) {
	if strings.TrimSpace(os) == "" || strings.TrimSpace(browser) == "" || strings.TrimSpace(device) == "" {
		return UserAgent{}, oops.Code("VALUE_INVALID_USER_AGENT").
			Errorf("user agent components cannot be empty")
	}
	return UserAgent{os: os, browser: browser, device: device}, nil
}

// OS returns the operating system component.
func (ua UserAgent) OS() string { return ua.os }

// Browser returns the browser component.
func (ua UserAgent) Browser() string { return ua.browser }

// Device returns the device component.
func (ua UserAgent) Device() string { return ua.device }

// IsZero reports whether the value is the uninitialized UserAgent.
func (ua UserAgent) IsZero() bool {
	return ua.os == "" && ua.browser == "" && ua.device == ""
}

func (ua UserAgent) String() string {
	return ua.browser + " on " + ua.os + " (" + ua.device + ")"
}
