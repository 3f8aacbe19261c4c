package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/app"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/utils"
	"github.com/MKhiriev/go-waste-sync/models"
)

// getUpdates serves GET /api/sync/updates?since=<RFC3339>. Without since the
// caller gets every visible record.
func (h *Handler) getUpdates(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	req, ok := syncRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.services.SyncService.GetUpdates(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.getUpdates", err)
		return
	}

	log.Debug().Str("func", "*Handler.getUpdates").Int64("user_id", req.UserID).
		Int("bins", len(resp.Bins)).
		Int("pickups", len(resp.Pickups)).
		Int("transactions", len(resp.Transactions)).
		Int("collections", len(resp.Collections)).
		Msg("delta served")

	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}

// syncRequest builds the caller's scope from the context and the since query
// parameter. It answers 400 when since is not an RFC3339 timestamp.
func syncRequest(w http.ResponseWriter, r *http.Request) (models.SyncRequest, bool) {
	userID, role := identity(r)
	req := models.SyncRequest{UserID: userID, Role: role}

	raw := r.URL.Query().Get("since")
	if raw == "" {
		return req, true
	}

	since, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		logger.FromRequest(r).Debug().Err(err).Str("func", "syncRequest").Str("since", raw).Msg("bad since parameter")
		utils.WriteMessage(w, app.MsgInvalidSince, http.StatusBadRequest)
		return models.SyncRequest{}, false
	}
	req.Since = &since
	return req, true
}
