package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-waste-sync/internal/service"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── register ─────────────────────────────────────────────────────────────────

func TestRegister(t *testing.T) {
	resident := models.User{UserID: 5, Username: "amal", Role: models.RoleResident}

	tests := []struct {
		name       string
		body       string
		setup      func(d *testDeps)
		wantStatus int
		wantBody   string
	}{
		{
			name: "created",
			body: `{"username":"amal","password":"secret1","role":"admin"}`,
			setup: func(d *testDeps) {
				d.auth.EXPECT().RegisterUser(gomock.Any(), models.AuthRequest{Username: "amal", Password: "secret1", Role: models.RoleAdmin}).
					Return(resident, nil)
				d.auth.EXPECT().CreateToken(gomock.Any(), resident).Return(models.Token{SignedString: "jwt"}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"token":"jwt","user":{"id":5,"username":"amal","role":"resident","createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z"}}`,
		},
		{
			name:       "invalid JSON",
			body:       `{"username":`,
			setup:      func(*testDeps) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"invalid data provided"}`,
		},
		{
			name: "short password",
			body: `{"username":"amal","password":"123"}`,
			setup: func(d *testDeps) {
				d.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).
					Return(models.User{}, fmt.Errorf("%w: password must be at least 6 characters", service.ErrInvalidDataProvided))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"invalid data provided: password must be at least 6 characters"}`,
		},
		{
			name: "username taken",
			body: `{"username":"amal","password":"secret1"}`,
			setup: func(d *testDeps) {
				d.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).
					Return(models.User{}, fmt.Errorf("user creation ended with error: %w", store.ErrUsernameAlreadyExists))
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"message":"Username already exists"}`,
		},
		{
			name: "token creation failed",
			body: `{"username":"amal","password":"secret1"}`,
			setup: func(d *testDeps) {
				d.auth.EXPECT().RegisterUser(gomock.Any(), gomock.Any()).Return(resident, nil)
				d.auth.EXPECT().CreateToken(gomock.Any(), resident).Return(models.Token{}, service.ErrTokenCreationFailed)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, d := newTestHandler(t, "")
			tt.setup(d)

			rec := serve(t, h.Init(), http.MethodPost, "/api/auth/register", tt.body, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

// ── login ────────────────────────────────────────────────────────────────────

func TestLogin(t *testing.T) {
	staff := models.User{UserID: 9, Username: "nimal", Role: models.RoleStaff}

	t.Run("ok", func(t *testing.T) {
		h, d := newTestHandler(t, "")
		d.auth.EXPECT().Login(gomock.Any(), models.AuthRequest{Username: "nimal", Password: "secret1"}).Return(staff, nil)
		d.auth.EXPECT().CreateToken(gomock.Any(), staff).Return(models.Token{SignedString: "jwt"}, nil)

		rec := serve(t, h.Init(), http.MethodPost, "/api/auth/login", `{"username":"nimal","password":"secret1"}`, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp models.AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "jwt", resp.Token)
		assert.Equal(t, models.RoleStaff, resp.User.Role)
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("wrong credentials", func(t *testing.T) {
		h, d := newTestHandler(t, "")
		d.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{}, service.ErrInvalidCredentials)

		rec := serve(t, h.Init(), http.MethodPost, "/api/auth/login", `{"username":"nimal","password":"nope"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Invalid credentials"}`, rec.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		h, d := newTestHandler(t, "")
		d.auth.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(models.User{}, fmt.Errorf("%w: connection refused", service.ErrServiceUnavailable))

		rec := serve(t, h.Init(), http.MethodPost, "/api/auth/login", `{"username":"nimal","password":"secret1"}`, nil)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

// ── me ───────────────────────────────────────────────────────────────────────

func TestMe(t *testing.T) {
	h, d := newTestHandler(t, "")
	auth := d.signIn(9, models.RoleStaff)
	d.auth.EXPECT().GetUser(gomock.Any(), int64(9)).Return(models.User{UserID: 9, Username: "nimal", Role: models.RoleStaff}, nil)

	rec := serve(t, h.Init(), http.MethodGet, "/api/auth/me", "", bearer(auth))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":9,"username":"nimal","role":"staff","createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z"}`, rec.Body.String())
}

func TestMe_UserGone(t *testing.T) {
	h, d := newTestHandler(t, "")
	auth := d.signIn(9, models.RoleStaff)
	d.auth.EXPECT().GetUser(gomock.Any(), int64(9)).Return(models.User{}, store.ErrNoUserWasFound)

	rec := serve(t, h.Init(), http.MethodGet, "/api/auth/me", "", bearer(auth))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
