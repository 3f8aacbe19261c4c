package http

import (
	"net/http"

	"github.com/MKhiriev/go-waste-sync/internal/app"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/utils"
	"github.com/MKhiriev/go-waste-sync/models"
)

func (h *Handler) createPickup(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.CreatePickupRequest
	if !decodeJSON(w, r, "*Handler.createPickup", &req) {
		return
	}
	req.UserID, _ = identity(r)

	pickup, duplicate, err := h.services.PickupService.CreatePickup(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.createPickup", err)
		return
	}

	if duplicate {
		log.Info().Str("func", "*Handler.createPickup").Str("client_reference", req.ClientReference).Msg("pickup replayed")
		_, _ = utils.WriteJSON(w, models.PickupResponse{Message: app.MsgPickupAlreadySynced, Pickup: pickup, Duplicate: true}, http.StatusOK)
		return
	}
	_, _ = utils.WriteJSON(w, models.PickupResponse{Message: app.MsgPickupCreated, Pickup: pickup}, http.StatusCreated)
}

func (h *Handler) listPickups(w http.ResponseWriter, r *http.Request) {
	userID, role := identity(r)

	pickups, err := h.services.PickupService.ListPickups(r.Context(), models.SyncRequest{UserID: userID, Role: role})
	if err != nil {
		writeError(w, r, "*Handler.listPickups", err)
		return
	}
	_, _ = utils.WriteJSON(w, nonNil(pickups), http.StatusOK)
}

func (h *Handler) bulkUpdatePickups(w http.ResponseWriter, r *http.Request) {
	var update models.BulkPickupUpdate
	if !decodeJSON(w, r, "*Handler.bulkUpdatePickups", &update) {
		return
	}

	result, err := h.services.PickupService.BulkUpdate(r.Context(), update)
	if err != nil {
		writeError(w, r, "*Handler.bulkUpdatePickups", err)
		return
	}
	result.Updated = nonNil(result.Updated)
	_, _ = utils.WriteJSON(w, result, http.StatusOK)
}

// nonNil keeps empty lists as [] in JSON.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
