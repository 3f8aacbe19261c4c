package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-waste-sync/internal/config"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
)

type appInfoService struct {
	version string
	logger  *logger.Logger
}

// NewAppInfoService fails when no version is configured, so that a server
// never answers GET /api/version with an empty body.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Debug().Str("version", version).Msg("creating app info service")
	return &appInfoService{version: version, logger: logger}, nil
}

func (s *appInfoService) GetAppVersion(_ context.Context) string {
	return s.version
}
