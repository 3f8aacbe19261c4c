package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-waste-sync/internal/app"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/utils"
	"github.com/MKhiriev/go-waste-sync/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.AuthRequest
	if !decodeJSON(w, r, "*Handler.register", &req) {
		return
	}

	user, err := h.services.AuthService.RegisterUser(ctx, req)
	if err != nil {
		writeError(w, r, "*Handler.register", err)
		return
	}

	h.writeSession(w, r, user, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.AuthRequest
	if !decodeJSON(w, r, "*Handler.login", &req) {
		return
	}

	user, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	log.Debug().Int64("user_id", user.UserID).Str("role", string(user.Role)).Msg("user successfully logged in")

	h.writeSession(w, r, user, http.StatusOK)
}

func (h *Handler) writeSession(w http.ResponseWriter, r *http.Request, user models.User, status int) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		writeError(w, r, "*Handler.writeSession", err)
		return
	}

	_, _ = utils.WriteJSON(w, models.AuthResponse{Token: token.SignedString, User: user}, status)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, _ := identity(r)

	user, err := h.services.AuthService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, "*Handler.me", err)
		return
	}

	_, _ = utils.WriteJSON(w, user, http.StatusOK)
}

// decodeJSON reads the request body into v and answers 400 when it is not
// valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, fn string, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.FromRequest(r).Err(err).Str("func", fn).Msg("Invalid JSON was passed")
		utils.WriteMessage(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return false
	}
	return true
}

// identity returns the caller put in the context by auth.
func identity(r *http.Request) (int64, models.Role) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role, _ := utils.GetRoleFromContext(r.Context())
	return userID, role
}
