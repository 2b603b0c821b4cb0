// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

// Package identity holds the user aggregate and its factories. Users are
// created and reconstituted only through capability grants; mutations are
// gated on proofs and tokens pinned to the user, so callers cannot flip
// state they did not earn.
package identity
