// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-waste-sync/internal/adapter"
	"github.com/MKhiriev/go-waste-sync/internal/app"
	"github.com/MKhiriev/go-waste-sync/internal/store"
)

// mapAdapterError translates a transport error into the business error the
// server started from, keeping the transport error in the chain.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	var statusErr *adapter.StatusError
	msg := ""
	if errors.As(err, &statusErr) {
		msg = statusErr.Message
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		if msg == app.MsgInvalidCredentials {
			return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)

	case errors.Is(err, adapter.ErrConflict):
		switch msg {
		case app.MsgUsernameAlreadyExists:
			return fmt.Errorf("%w: %w", store.ErrUsernameAlreadyExists, err)
		case app.MsgBinAlreadyExists:
			return fmt.Errorf("%w: %w", store.ErrBinAlreadyExists, err)
		}

	case errors.Is(err, adapter.ErrUnprocessable):
		if statusErr != nil && statusErr.DistanceFromBin != nil {
			return &GeofenceError{DistanceFromBin: *statusErr.DistanceFromBin}
		}
		return fmt.Errorf("%w: %w", ErrGeofenceMismatch, err)

	case errors.Is(err, adapter.ErrNotFound):
		if msg == app.MsgBinNotFound {
			return fmt.Errorf("%w: %w", store.ErrBinNotFound, err)
		}

	case errors.Is(err, adapter.ErrBadRequest):
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)

	case errors.Is(err, adapter.ErrServerError), errors.Is(err, adapter.ErrServerUnreachable):
		return fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	return err
}
