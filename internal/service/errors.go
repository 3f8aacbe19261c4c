package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("invalid credentials")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrPasswordHashing         = errors.New("password hashing failed")

	ErrVersionIsNotSpecified = errors.New("version is not specified")

	// ErrServiceUnavailable marks a transient storage failure; clients
	// should retry.
	ErrServiceUnavailable = errors.New("service temporarily unavailable")

	ErrIdempotencyLookup = errors.New("idempotency lookup failed")
	ErrSyncQuery         = errors.New("sync query failed")
	ErrSnapshot          = errors.New("snapshot failed")

	// ErrGeofenceMismatch is matched by *GeofenceError.
	ErrGeofenceMismatch = errors.New("device location does not match the bin coordinates")
)

// GeofenceError carries the measured distance of a rejected scan.
type GeofenceError struct {
	DistanceFromBin float64
	Threshold       float64
}

func (e *GeofenceError) Error() string {
	return fmt.Sprintf("%s: %.0fm from bin, allowed %.0fm", ErrGeofenceMismatch, e.DistanceFromBin, e.Threshold)
}

func (e *GeofenceError) Is(target error) bool {
	return target == ErrGeofenceMismatch
}
