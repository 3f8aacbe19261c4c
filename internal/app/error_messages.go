// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// sync server handlers and the client adapter.
//
// All Msg* constants are human-readable message strings written into HTTP
// response bodies. The client matches on some of them, so keep the wording
// stable.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned for unexpected server-side failures.
	MsgInternalServerError = "internal server error"

	// MsgServiceUnavailable is returned when the database is temporarily
	// unreachable and the request is worth retrying.
	MsgServiceUnavailable = "service temporarily unavailable"

	// MsgInvalidCredentials is returned when username/password do not match.
	MsgInvalidCredentials = "Invalid credentials"

	// MsgUsernameAlreadyExists is returned on a registration name clash.
	MsgUsernameAlreadyExists = "Username already exists"

	// MsgNoTokenProvided is returned when the Authorization header is missing.
	MsgNoTokenProvided = "No token provided"

	// MsgUnauthorized is returned when the bearer token is expired or invalid.
	MsgUnauthorized = "Unauthorized"

	// MsgForbidden is returned when the caller's role may not use the route.
	MsgForbidden = "Forbidden"

	// MsgNotFound is returned for unknown routes.
	MsgNotFound = "Not Found"

	// MsgBinNotFound is returned by a scan for an unknown binId.
	MsgBinNotFound = "Bin not found"

	// MsgBinAlreadyExists is returned when creating a bin with a taken binId.
	MsgBinAlreadyExists = "binId already exists"

	// MsgGeofenceMismatch is returned with 422 when the device is too far
	// from the bin.
	MsgGeofenceMismatch = "Device location does not match the bin coordinates. Please verify before submitting."

	// MsgCollectionRecorded acknowledges a first-time scan.
	MsgCollectionRecorded = "Collection recorded"

	// MsgCollectionAlreadySynced acknowledges a replayed scan.
	MsgCollectionAlreadySynced = "Collection already synced"

	// MsgPickupCreated acknowledges a first-time pickup request.
	MsgPickupCreated = "Pickup request created."

	// MsgPickupAlreadySynced acknowledges a replayed pickup request.
	MsgPickupAlreadySynced = "Pickup already synced"

	// MsgPaymentProcessed acknowledges a first-time payment.
	MsgPaymentProcessed = "Payment processed successfully."

	// MsgPaymentAlreadySynced acknowledges a replayed payment.
	MsgPaymentAlreadySynced = "Payment already synced"

	// MsgHashMismatch is returned when the HashSHA256 header does not match
	// the request body.
	MsgHashMismatch = "body hash mismatch"

	// MsgInvalidSince is returned for an unparsable since parameter.
	MsgInvalidSince = "since must be an RFC3339 timestamp"
)
