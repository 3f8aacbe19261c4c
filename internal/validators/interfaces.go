// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks write requests before they reach the
// idempotency ledger, so that a rejected request never records a
// clientReference. The service layer answers every failure with a 400
// carrying the error text.
package validators

import "context"

// Validator checks one request value. fields limits the check to the named
// fields; none means all of them.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
