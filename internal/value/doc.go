// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyward Contributors

// Package value contains the self-validating value primitives of the
// authentication domain: email addresses, raw passwords, password hashes,
// identifiers, IP addresses, parsed user agents, and MFA codes.
//
// Every type validates at construction and is immutable afterwards. All
// types are comparable structs: two values are equal exactly when their
// normalized contents are equal. Construction failures carry VALUE_*
// error codes and are never domain-recoverable.
package value
