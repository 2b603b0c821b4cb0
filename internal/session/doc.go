// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

// Package session holds the session aggregate. Sessions open only from a
// successful authentication, answer liveness questions with proofs, and
// revoke exactly once.
package session
