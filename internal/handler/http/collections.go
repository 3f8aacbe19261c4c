package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-waste-sync/internal/app"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/utils"
	"github.com/MKhiriev/go-waste-sync/models"
)

func (h *Handler) scan(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.ScanRequest
	if !decodeJSON(w, r, "*Handler.scan", &req) {
		return
	}
	req.CollectorID, _ = identity(r)

	result, err := h.services.CollectionService.Scan(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.scan", err)
		return
	}

	if result.Duplicate {
		log.Info().Str("func", "*Handler.scan").Str("client_reference", req.ClientReference).Msg("scan replayed")
		_, _ = utils.WriteJSON(w, models.ScanResponse{
			Message:         app.MsgCollectionAlreadySynced,
			Record:          result.Record,
			DistanceFromBin: result.DistanceFromBin,
			Duplicate:       true,
		}, http.StatusOK)
		return
	}

	_, _ = utils.WriteJSON(w, models.ScanResponse{
		Message:         app.MsgCollectionRecorded,
		Record:          result.Record,
		DistanceFromBin: result.DistanceFromBin,
	}, http.StatusCreated)
}

// collectionStats serves GET /api/collections/stats?days=N. A missing or
// unparsable N falls back to the default window.
func (h *Handler) collectionStats(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	stats, err := h.services.CollectionService.Stats(r.Context(), days)
	if err != nil {
		writeError(w, r, "*Handler.collectionStats", err)
		return
	}
	_, _ = utils.WriteJSON(w, stats, http.StatusOK)
}
