package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-waste-sync/internal/app"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/service"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/internal/utils"
	"github.com/MKhiriev/go-waste-sync/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrGeofenceMismatch:        http.StatusUnprocessableEntity,
	service.ErrServiceUnavailable:      http.StatusServiceUnavailable,

	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrBinAlreadyExists:      http.StatusConflict,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrBinNotFound:           http.StatusNotFound,
	store.ErrReferencedRowMissing:  http.StatusBadRequest,
}

// statusMessages overrides the response message of errors the client
// matches on.
var statusMessages = map[error]string{
	service.ErrInvalidCredentials:  app.MsgInvalidCredentials,
	store.ErrUsernameAlreadyExists: app.MsgUsernameAlreadyExists,
	store.ErrBinAlreadyExists:      app.MsgBinAlreadyExists,
	store.ErrBinNotFound:           app.MsgBinNotFound,
	service.ErrGeofenceMismatch:    app.MsgGeofenceMismatch,
	service.ErrServiceUnavailable:  app.MsgServiceUnavailable,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error, status int) string {
	for target, msg := range statusMessages {
		if errors.Is(err, target) {
			return msg
		}
	}
	switch status {
	case http.StatusInternalServerError:
		return app.MsgInternalServerError
	case http.StatusUnauthorized:
		return app.MsgUnauthorized
	}
	// validation errors carry the failing rule
	return err.Error()
}

// writeError answers with the status mapped from err and a JSON message.
// A geofence rejection also carries the measured distance.
func writeError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	var geofenceErr *service.GeofenceError
	if errors.As(err, &geofenceErr) {
		log.Warn().Str("func", fn).Float64("distance_from_bin", geofenceErr.DistanceFromBin).Msg("scan rejected by geofence")
		_, _ = utils.WriteJSON(w, models.GeofenceErrorResponse{
			Message:         app.MsgGeofenceMismatch,
			DistanceFromBin: geofenceErr.DistanceFromBin,
		}, http.StatusUnprocessableEntity)
		return
	}

	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", fn).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("func", fn).Int("status", status).Msg("request rejected")
	}
	utils.WriteMessage(w, messageFromError(err, status), status)
}
