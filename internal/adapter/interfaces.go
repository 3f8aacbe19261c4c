// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client's transport to the waste-sync server.
//
// [ServerAdapter] decouples the client services from HTTP. The package ships
// a resty implementation ([NewHTTPServerAdapter]) whose hooks feed every
// observed response or transport failure into a [ConnectivityReporter].
//
// Non-2xx responses are mapped to *[StatusError] values that unwrap to the
// sentinels in errors.go, so callers can use [errors.Is] without looking at
// status codes (e.g. [ErrConflict] for 409, [ErrUnprocessable] for 422).
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-waste-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the client's view of the server API.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the current bearer token or "".
	Token() string

	// Register creates a resident account and stores the returned token.
	Register(ctx context.Context, req models.AuthRequest) (models.Session, error)

	// Login authenticates and stores the returned token.
	Login(ctx context.Context, req models.AuthRequest) (models.Session, error)

	// Me returns the account the current token belongs to.
	Me(ctx context.Context) (models.User, error)

	// GetUpdates fetches entities changed after since. A nil since requests
	// the full visible dataset.
	GetUpdates(ctx context.Context, since *time.Time) (models.SyncUpdates, error)

	// Submit posts a queued mutation to the endpoint of its area.
	Submit(ctx context.Context, area models.QueueArea, payload models.Payload) (models.WriteAck, error)

	// Ping calls the health endpoint.
	Ping(ctx context.Context) error
}

// ConnectivityReporter receives reachability signals observed by the
// transport.
type ConnectivityReporter interface {
	Report(online bool)
}

// Pinger checks that the server answers.
type Pinger interface {
	Ping(ctx context.Context) error
}
