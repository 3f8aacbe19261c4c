// Package utils provides general-purpose helpers shared by the server and
// the client: typed context keys, body hashing, JSON response writing, the
// resty client wrapper, JWT issuing and validation, and id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-waste-sync/models"
)

// contextKey is a private type for context keys.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey holds the authenticated user id (int64).
	UserIDCtxKey = contextKey("userID")
	// RoleCtxKey holds the authenticated user role ([models.Role]).
	RoleCtxKey = contextKey("role")
)

// WithIdentity returns a copy of ctx carrying the caller's id and role.
func WithIdentity(ctx context.Context, userID int64, role models.Role) context.Context {
	ctx = context.WithValue(ctx, UserIDCtxKey, userID)
	return context.WithValue(ctx, RoleCtxKey, role)
}

// GetUserIDFromContext retrieves the user identifier from the context.
// ok is false when the value is missing or has an unexpected type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetRoleFromContext retrieves the caller role from the context.
func GetRoleFromContext(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(RoleCtxKey).(models.Role)
	return role, ok
}
