package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/adapter"
	"github.com/MKhiriev/go-waste-sync/models"
)

const (
	DefaultQueueBaseBackoff = 2 * time.Second
	DefaultQueueMaxBackoff  = 5 * time.Minute
)

// BackoffRetryPolicy retries transient failures with capped exponential
// backoff and dead-letters validation failures at once.
type BackoffRetryPolicy struct {
	base        time.Duration
	max         time.Duration
	maxAttempts int
}

// NewBackoffRetryPolicy fills zero durations with the defaults. maxAttempts
// 0 retries transient failures forever.
func NewBackoffRetryPolicy(base, max time.Duration, maxAttempts int) *BackoffRetryPolicy {
	if base <= 0 {
		base = DefaultQueueBaseBackoff
	}
	if max <= 0 {
		max = DefaultQueueMaxBackoff
	}
	if max < base {
		max = base
	}
	if maxAttempts < 0 {
		maxAttempts = 0
	}
	return &BackoffRetryPolicy{base: base, max: max, maxAttempts: maxAttempts}
}

func (p *BackoffRetryPolicy) Classify(err error) models.Disposition {
	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return models.Hold
	case errors.Is(err, adapter.ErrServerUnreachable),
		errors.Is(err, adapter.ErrServerError),
		errors.Is(err, adapter.ErrRequestTimeout),
		errors.Is(err, adapter.ErrTooManyRequests),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return models.Retry
	case errors.Is(err, adapter.ErrBadRequest),
		errors.Is(err, adapter.ErrForbidden),
		errors.Is(err, adapter.ErrNotFound),
		errors.Is(err, adapter.ErrUnprocessable),
		errors.Is(err, adapter.ErrUnknownArea):
		return models.DeadLetter
	}

	var statusErr *adapter.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode < http.StatusInternalServerError {
		return models.DeadLetter
	}
	return models.Retry
}

func (p *BackoffRetryPolicy) Backoff(attempts int) time.Duration {
	if attempts <= 0 {
		return 0
	}
	delay := p.base
	for i := 1; i < attempts; i++ {
		delay *= 2
		if delay >= p.max {
			return p.max
		}
	}
	return delay
}

func (p *BackoffRetryPolicy) MaxAttempts() int {
	return p.maxAttempts
}
