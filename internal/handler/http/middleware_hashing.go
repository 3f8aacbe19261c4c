package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-waste-sync/internal/app"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/utils"
)

// withBodyHash verifies the HMAC-SHA256 signature a client sends in the
// HashSHA256 header. Requests without the header pass through, as does
// everything when the server has no hash key.
func (h *Handler) withBodyHash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		signature := r.Header.Get(utils.HashHeader)
		if h.hasher == nil || signature == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		// read bytes from body
		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.withBodyHash").Msg("failed to read request body")
			utils.WriteMessage(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !h.hasher.Verify(body, signature) {
			log.Error().Err(ErrBodyHashMismatch).Str("func", "*Handler.withBodyHash").
				Str("hash from request", signature).
				Str("hashed body", h.hasher.HexSum(body)).
				Msg("hashes are not equal")
			utils.WriteMessage(w, app.MsgHashMismatch, http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
