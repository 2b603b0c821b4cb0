// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

// Package credential validates sign-up and login attempts and certifies
// their outcomes as typed proofs. Business failures (wrong password,
// locked account, duplicate email) come back as data for the caller to
// branch on; only infrastructure faults surface as errors.
package credential
