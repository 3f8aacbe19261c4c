package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/store"
)

const healthPingTimeout = 2 * time.Second

type healthService struct {
	db store.HealthChecker
}

func NewHealthService(db store.HealthChecker) HealthService {
	return &healthService{db: db}
}

// Check pings the database with a short deadline.
func (s *healthService) Check(ctx context.Context) error {
	if s.db == nil {
		return ErrServiceUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	return nil
}
