// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-waste-sync/internal/config"
	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/internal/utils"
	"github.com/MKhiriev/go-waste-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "testhashkey"

type recordingReporter struct {
	mu      sync.Mutex
	reports []bool
}

func (r *recordingReporter) Report(online bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, online)
}

func (r *recordingReporter) last(t *testing.T) bool {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.reports)
	return r.reports[len(r.reports)-1]
}

func newTestAdapter(t *testing.T, serverURL string, reporter ConnectivityReporter) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second}
	appCfg := config.ClientApp{HashKey: testHashKey}

	a, err := NewHTTPServerAdapter(adapterCfg, appCfg, reporter, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

// ── Construction ────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:4000", want: "http://localhost:4000"},
		{raw: " https://api.example.com/ ", want: "https://api.example.com"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── Auth ────────────────────────────────────────────────────────────────────

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		_, _ = utils.WriteJSON(w, models.AuthResponse{Token: "tok", User: models.User{UserID: 7, Username: "ana", Role: models.RoleStaff}}, http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, nil)
	session, err := a.Login(context.Background(), models.AuthRequest{Username: "ana", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "tok", session.Token)
	assert.Equal(t, int64(7), session.User.UserID)
	assert.Equal(t, "tok", a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteMessage(w, "Username already exists", http.StatusConflict)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, nil)
	_, err := a.Register(context.Background(), models.AuthRequest{Username: "ana", Password: "secret1"})

	require.ErrorIs(t, err, ErrConflict)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Username already exists", statusErr.Message)
	assert.Empty(t, a.Token())
}

func TestMe_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = utils.WriteJSON(w, models.User{UserID: 3, Username: "bo"}, http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, nil)
	a.SetToken(" tok ")

	user, err := a.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bo", user.Username)
}

// ── Delta sync ──────────────────────────────────────────────────────────────

func TestGetUpdates_SinceQuery(t *testing.T) {
	since := time.Date(2026, 3, 1, 10, 0, 0, 123_000_000, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/updates", r.URL.Path)
		assert.Equal(t, "2026-03-01T10:00:00.123Z", r.URL.Query().Get("since"))
		_, _ = w.Write([]byte(`{"serverTime":"2026-03-01T10:05:00.000Z","since":"2026-03-01T10:00:00.123Z",
			"bins":[{"id":"b1","binId":"BIN-1","extra":true}],"pickups":[],"transactions":[],"collections":[]}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, nil)
	updates, err := a.GetUpdates(context.Background(), &since)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC), updates.ServerTime.UTC())
	require.Len(t, updates.Bins, 1)
	assert.JSONEq(t, `true`, string(updates.Bins[0]["extra"]))
	assert.Empty(t, updates.Pickups)
}

func TestGetUpdates_NoSince(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("since"))
		_, _ = w.Write([]byte(`{"serverTime":"2026-03-01T10:05:00.000Z","since":null,"bins":[],"pickups":[],"transactions":[],"collections":[]}`))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL, nil).GetUpdates(context.Background(), nil)
	require.NoError(t, err)
}

// ── Mutations ───────────────────────────────────────────────────────────────

func TestSubmit_RoutesAndSigns(t *testing.T) {
	tests := []struct {
		area models.QueueArea
		path string
	}{
		{area: models.QueueCollections, path: "/api/collections/scan"},
		{area: models.QueuePickups, path: "/api/pickups"},
		{area: models.QueuePayments, path: "/api/transactions/pay"},
	}

	hasher := utils.NewHasher(testHashKey)
	for _, tt := range tests {
		t.Run(string(tt.area), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.path, r.URL.Path)
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.True(t, hasher.Verify(body, r.Header.Get(HashHeader)))
				assert.JSONEq(t, `{"clientReference":"ref-1","amount":5}`, string(body))
				_, _ = w.Write([]byte(`{"message":"stored","duplicate":true}`))
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL, nil)
			ack, err := a.Submit(context.Background(), tt.area, models.Payload{"clientReference": "ref-1", "amount": 5})

			require.NoError(t, err)
			assert.True(t, ack.Duplicate)
		})
	}
}

func TestSubmit_UnknownArea(t *testing.T) {
	a := newTestAdapter(t, "http://127.0.0.1:1", nil)
	_, err := a.Submit(context.Background(), models.QueueArea("bogus"), models.Payload{})
	require.ErrorIs(t, err, ErrUnknownArea)
}

func TestSubmit_GeofenceRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"too far","distanceFromBin":140}`))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL, nil).Submit(context.Background(), models.QueueCollections, models.Payload{"binId": "BIN-1"})

	require.ErrorIs(t, err, ErrUnprocessable)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
	require.NotNil(t, statusErr.DistanceFromBin)
	assert.InDelta(t, 140, *statusErr.DistanceFromBin, 0.001)
}

func TestMapHTTPError_Statuses(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusRequestTimeout, ErrRequestTimeout},
		{http.StatusConflict, ErrConflict},
		{http.StatusTooManyRequests, ErrTooManyRequests},
		{http.StatusInternalServerError, ErrServerError},
		{http.StatusServiceUnavailable, ErrServerError},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := newTestAdapter(t, srv.URL, nil).Ping(context.Background())
			require.ErrorIs(t, err, tt.want)
		})
	}
}

// ── Connectivity hooks ──────────────────────────────────────────────────────

func TestHooks_ReportOnlineOnAnyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	reporter := &recordingReporter{}
	err := newTestAdapter(t, srv.URL, reporter).Ping(context.Background())

	require.ErrorIs(t, err, ErrServerError)
	assert.True(t, reporter.last(t))
}

func TestHooks_ReportOfflineOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	reporter := &recordingReporter{}
	err := newTestAdapter(t, url, reporter).Ping(context.Background())

	require.ErrorIs(t, err, ErrServerUnreachable)
	assert.False(t, reporter.last(t))
}
