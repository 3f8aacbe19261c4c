package http

import (
	"net/http"

	"github.com/MKhiriev/go-waste-sync/internal/utils"
	"github.com/MKhiriev/go-waste-sync/models"
)

func (h *Handler) createBin(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBinRequest
	if !decodeJSON(w, r, "*Handler.createBin", &req) {
		return
	}

	bin, err := h.services.BinService.CreateBin(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.createBin", err)
		return
	}
	_, _ = utils.WriteJSON(w, bin, http.StatusCreated)
}

func (h *Handler) listBins(w http.ResponseWriter, r *http.Request) {
	userID, role := identity(r)

	bins, err := h.services.BinService.ListBins(r.Context(), models.SyncRequest{UserID: userID, Role: role})
	if err != nil {
		writeError(w, r, "*Handler.listBins", err)
		return
	}
	_, _ = utils.WriteJSON(w, nonNil(bins), http.StatusOK)
}

func (h *Handler) bulkUpdateBins(w http.ResponseWriter, r *http.Request) {
	var update models.BulkBinUpdate
	if !decodeJSON(w, r, "*Handler.bulkUpdateBins", &update) {
		return
	}

	result, err := h.services.BinService.BulkUpdate(r.Context(), update)
	if err != nil {
		writeError(w, r, "*Handler.bulkUpdateBins", err)
		return
	}
	result.Updated = nonNil(result.Updated)
	_, _ = utils.WriteJSON(w, result, http.StatusOK)
}
