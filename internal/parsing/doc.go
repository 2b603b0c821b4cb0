// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

// Package parsing turns raw token strings into payload records. Tokens
// arrive in two shapes: self-contained JWTs, whose claims are recovered
// after signature verification, and opaque identifiers, whose payload is
// looked up server-side.
package parsing
