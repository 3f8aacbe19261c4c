package http

import (
	"net/http"

	"github.com/MKhiriev/go-waste-sync/internal/app"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/utils"
	"github.com/MKhiriev/go-waste-sync/models"
)

// health answers 200 while the database responds. Clients use it as their
// connectivity probe, so it needs no token.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.services.HealthService.Check(r.Context()); err != nil {
		logger.FromRequest(r).Warn().Err(err).Str("func", "*Handler.health").Msg("database is not reachable")
		utils.WriteMessage(w, app.MsgServiceUnavailable, http.StatusServiceUnavailable)
		return
	}
	_, _ = utils.WriteJSON(w, models.HealthResponse{Status: "ok"}, http.StatusOK)
}
