package http

import (
	"net/http"

	"github.com/MKhiriev/go-waste-sync/internal/app"
	"github.com/MKhiriev/go-waste-sync/internal/utils"
	"github.com/MKhiriev/go-waste-sync/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)

	router.Get("/api/version", h.getServerVersion)
	router.Get("/api/health", h.health)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(h.withBodyHash)
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/auth/me", h.me)
		r.Get("/api/sync/updates", h.getUpdates)
		r.Get("/api/bins", h.listBins)
		r.Get("/api/pickups", h.listPickups)
		r.Get("/api/transactions", h.listTransactions)

		r.Group(func(r chi.Router) {
			r.Use(h.withBodyHash)

			r.Post("/api/pickups", h.createPickup)
			r.Post("/api/transactions/pay", h.pay)

			r.With(requireRole(models.RoleStaff, models.RoleAdmin)).Post("/api/collections/scan", h.scan)
			r.With(requireRole(models.RoleAdmin)).Post("/api/bins", h.createBin)

			r.Group(func(r chi.Router) {
				r.Use(requireRole(models.RoleStaff, models.RoleAdmin))
				r.Patch("/api/pickups/bulk", h.bulkUpdatePickups)
				r.Patch("/api/transactions/bulk", h.bulkUpdateTransactions)
				r.Patch("/api/bins/bulk", h.bulkUpdateBins)
			})
		})

		r.Get("/api/collections/stats", h.collectionStats)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteMessage(w, app.MsgNotFound, http.StatusNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
