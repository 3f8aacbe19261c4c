package http

import (
	"net/http"
	"slices"
	"strings"

	"github.com/MKhiriev/go-waste-sync/internal/app"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/utils"
	"github.com/MKhiriev/go-waste-sync/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores the caller's id and role in
// the request context with [utils.WithIdentity].
//
// A missing header is answered with 401 and [app.MsgNoTokenProvided]; a
// malformed, expired or otherwise invalid token with 401 and
// [app.MsgUnauthorized].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Str("func", "*Handler.auth").Send()
			utils.WriteMessage(w, app.MsgNoTokenProvided, http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Debug().Err(err).Str("func", "*Handler.auth").Send()
			utils.WriteMessage(w, app.MsgUnauthorized, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Debug().Err(err).Str("func", "*Handler.auth").Msg("token rejected")
			utils.WriteMessage(w, app.MsgUnauthorized, http.StatusUnauthorized)
			return
		}

		ctx = utils.WithIdentity(ctx, token.UserID, token.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole answers 403 unless the authenticated caller has one of roles.
// It must run after auth.
func requireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok || !slices.Contains(roles, role) {
				logger.FromRequest(r).Debug().Str("func", "requireRole").Str("role", string(role)).
					Str("uri", r.RequestURI).Msg("role may not use route")
				utils.WriteMessage(w, app.MsgForbidden, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// getTokenFromAuthHeader extracts the token from "Bearer <token>".
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] if the scheme is not Bearer or the
//     token part is missing.
//   - [ErrEmptyToken] if the token part is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	scheme, tokenString, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
