// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Lanun66

// Package validators holds the input validation rules for hydration data.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//
// Validators are injected into services so that every transport shares one
// set of rules, and bad input is rejected with a typed error before any
// storage call is made.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
