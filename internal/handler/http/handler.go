package http

import (
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/service"
	"github.com/MKhiriev/go-waste-sync/internal/utils"
)

type Handler struct {
	services *service.Services

	// hasher verifies the HashSHA256 header. Nil disables the check.
	hasher *utils.Hasher

	logger *logger.Logger
}

func NewHandler(services *service.Services, hashKey string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	h := &Handler{
		services: services,
		logger:   logger,
	}
	if hashKey != "" {
		h.hasher = utils.NewHasher(hashKey)
	}
	return h
}
