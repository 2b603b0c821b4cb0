// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

// Package token holds the token aggregate: one struct tagged by kind
// (access, refresh, verification, password reset, MFA) with a
// kind-specific pin and fixed lifetime. Refresh tokens additionally
// certify rotation and revoke exactly once, making them single-use
// across a rotation boundary.
package token
