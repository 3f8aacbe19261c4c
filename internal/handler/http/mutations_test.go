package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-waste-sync/internal/service"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/internal/utils"
	"github.com/MKhiriev/go-waste-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── POST /api/pickups ────────────────────────────────────────────────────────

func TestCreatePickup(t *testing.T) {
	const body = `{"wasteType":"organic","description":"garden waste","clientReference":"pickup-1-aa"}`
	pickup := models.Pickup{ID: "p1", UserID: 7, WasteType: models.WasteTypeOrganic, Status: models.PickupPending, ClientReference: "pickup-1-aa"}

	tests := []struct {
		name       string
		duplicate  bool
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "created", wantStatus: http.StatusCreated, wantMsg: "Pickup request created."},
		{name: "replayed", duplicate: true, wantStatus: http.StatusOK, wantMsg: "Pickup already synced"},
		{
			name:       "invalid waste type",
			err:        fmt.Errorf("%w: unknown waste type", service.ErrInvalidDataProvided),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid data provided: unknown waste type",
		},
		{
			name:       "database unavailable",
			err:        service.ErrServiceUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "service temporarily unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, d := newTestHandler(t, "")
			auth := d.signIn(7, models.RoleResident)

			d.pickups.EXPECT().CreatePickup(gomock.Any(), models.CreatePickupRequest{
				UserID:          7,
				WasteType:       models.WasteTypeOrganic,
				Description:     "garden waste",
				ClientReference: "pickup-1-aa",
			}).Return(pickup, tt.duplicate, tt.err)

			rec := serve(t, h.Init(), http.MethodPost, "/api/pickups", body, bearer(auth))

			require.Equal(t, tt.wantStatus, rec.Code)
			var ack models.WriteAck
			decodeBody(t, rec.Body.Bytes(), &ack)
			assert.Equal(t, tt.wantMsg, ack.Message)
			assert.Equal(t, tt.duplicate, ack.Duplicate)
		})
	}
}

func TestCreatePickup_IgnoresUserIDInBody(t *testing.T) {
	h, d := newTestHandler(t, "")
	auth := d.signIn(7, models.RoleResident)

	d.pickups.EXPECT().CreatePickup(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req models.CreatePickupRequest) (models.Pickup, bool, error) {
			assert.Equal(t, int64(7), req.UserID)
			return models.Pickup{ID: "p1"}, false, nil
		})

	rec := serve(t, h.Init(), http.MethodPost, "/api/pickups", `{"userId":99,"wasteType":"general"}`, bearer(auth))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreatePickup_InvalidJSON(t *testing.T) {
	h, d := newTestHandler(t, "")
	auth := d.signIn(7, models.RoleResident)
	d.pickups.EXPECT().CreatePickup(gomock.Any(), gomock.Any()).Times(0)

	rec := serve(t, h.Init(), http.MethodPost, "/api/pickups", `not json`, bearer(auth))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"invalid data provided"}`, rec.Body.String())
}

func TestListPickups_EmptyIsArray(t *testing.T) {
	h, d := newTestHandler(t, "")
	auth := d.signIn(7, models.RoleResident)
	d.pickups.EXPECT().ListPickups(gomock.Any(), models.SyncRequest{UserID: 7, Role: models.RoleResident}).Return(nil, nil)

	rec := serve(t, h.Init(), http.MethodGet, "/api/pickups", "", bearer(auth))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

// ── POST /api/transactions/pay ───────────────────────────────────────────────

func TestPay(t *testing.T) {
	const body = `{"type":"payment","amount":12.5,"clientReference":"payment-1-bb"}`
	tx := models.Transaction{ID: "t1", UserID: 7, Type: models.TransactionPayment, Amount: 12.5, Status: models.TransactionPaid}

	tests := []struct {
		name       string
		duplicate  bool
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "processed", wantStatus: http.StatusCreated, wantMsg: "Payment processed successfully."},
		{name: "replayed", duplicate: true, wantStatus: http.StatusOK, wantMsg: "Payment already synced"},
		{
			name:       "non-positive amount",
			err:        fmt.Errorf("%w: amount must be positive", service.ErrInvalidDataProvided),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid data provided: amount must be positive",
		},
		{
			name:       "lookup failed",
			err:        service.ErrIdempotencyLookup,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, d := newTestHandler(t, "")
			auth := d.signIn(7, models.RoleResident)

			d.txs.EXPECT().Pay(gomock.Any(), models.PayRequest{
				UserID:          7,
				Type:            models.TransactionPayment,
				Amount:          12.5,
				ClientReference: "payment-1-bb",
			}).Return(tx, tt.duplicate, tt.err)

			rec := serve(t, h.Init(), http.MethodPost, "/api/transactions/pay", body, bearer(auth))

			require.Equal(t, tt.wantStatus, rec.Code)
			var ack models.WriteAck
			decodeBody(t, rec.Body.Bytes(), &ack)
			assert.Equal(t, tt.wantMsg, ack.Message)
			assert.Equal(t, tt.duplicate, ack.Duplicate)
		})
	}
}

func TestPay_Response(t *testing.T) {
	h, d := newTestHandler(t, "")
	auth := d.signIn(7, models.RoleResident)
	d.txs.EXPECT().Pay(gomock.Any(), gomock.Any()).
		Return(models.Transaction{ID: "t1", UserID: 7, Type: models.TransactionPayment, Amount: 3, Status: models.TransactionPaid}, false, nil)

	rec := serve(t, h.Init(), http.MethodPost, "/api/transactions/pay", `{"type":"payment","amount":3}`, bearer(auth))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{
		"message": "Payment processed successfully.",
		"transaction": {
			"id": "t1",
			"userId": 7,
			"type": "payment",
			"amount": 3,
			"status": "paid",
			"createdAt": "0001-01-01T00:00:00Z",
			"updatedAt": "0001-01-01T00:00:00Z"
		}
	}`, rec.Body.String())
}

// ── POST /api/collections/scan ───────────────────────────────────────────────

func TestScan(t *testing.T) {
	const body = `{"binId":"BIN-001","weight":12.5,"clientReference":"collection-1-cc","location":{"latitude":6.9271,"longitude":79.8612,"accuracy":8}}`
	distance := 3.2
	record := models.CollectionRecord{ID: "c1", Bin: models.BinRef{ID: "b1", BinID: "BIN-001"}, Weight: 12.5, ClientReference: "collection-1-cc"}

	tests := []struct {
		name       string
		result     models.ScanResult
		err        error
		wantStatus int
		wantBody   func(t *testing.T, body []byte)
	}{
		{
			name:       "recorded",
			result:     models.ScanResult{Record: record, DistanceFromBin: &distance},
			wantStatus: http.StatusCreated,
			wantBody: func(t *testing.T, body []byte) {
				var resp models.ScanResponse
				decodeBody(t, body, &resp)
				assert.Equal(t, "Collection recorded", resp.Message)
				assert.Equal(t, "c1", resp.Record.ID)
				require.NotNil(t, resp.DistanceFromBin)
				assert.InDelta(t, 3.2, *resp.DistanceFromBin, 1e-9)
				assert.False(t, resp.Duplicate)
			},
		},
		{
			name:       "replayed",
			result:     models.ScanResult{Record: record, Duplicate: true},
			wantStatus: http.StatusOK,
			wantBody: func(t *testing.T, body []byte) {
				var resp models.ScanResponse
				decodeBody(t, body, &resp)
				assert.Equal(t, "Collection already synced", resp.Message)
				assert.True(t, resp.Duplicate)
				assert.Nil(t, resp.DistanceFromBin)
			},
		},
		{
			name:       "unknown bin",
			err:        fmt.Errorf("scan: %w", store.ErrBinNotFound),
			wantStatus: http.StatusNotFound,
			wantBody: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"message":"Bin not found"}`, string(body))
			},
		},
		{
			name:       "outside geofence",
			err:        &service.GeofenceError{DistanceFromBin: 412.5, Threshold: 50},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{
					"message": "Device location does not match the bin coordinates. Please verify before submitting.",
					"distanceFromBin": 412.5
				}`, string(body))
			},
		},
		{
			name:       "invalid weight",
			err:        fmt.Errorf("%w: weight must not be negative", service.ErrInvalidDataProvided),
			wantStatus: http.StatusBadRequest,
			wantBody: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"message":"invalid data provided: weight must not be negative"}`, string(body))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, d := newTestHandler(t, "")
			auth := d.signIn(3, models.RoleStaff)

			d.collections.EXPECT().Scan(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ any, req models.ScanRequest) (models.ScanResult, error) {
					assert.Equal(t, int64(3), req.CollectorID)
					assert.Equal(t, "BIN-001", req.BinID)
					require.NotNil(t, req.Weight)
					assert.InDelta(t, 12.5, *req.Weight, 1e-9)
					assert.True(t, req.Location.HasCoordinates())
					return tt.result, tt.err
				})

			rec := serve(t, h.Init(), http.MethodPost, "/api/collections/scan", body, bearer(auth))

			require.Equal(t, tt.wantStatus, rec.Code)
			tt.wantBody(t, rec.Body.Bytes())
		})
	}
}

func TestScan_ResidentForbidden(t *testing.T) {
	h, d := newTestHandler(t, "")
	auth := d.signIn(7, models.RoleResident)
	d.collections.EXPECT().Scan(gomock.Any(), gomock.Any()).Times(0)

	rec := serve(t, h.Init(), http.MethodPost, "/api/collections/scan", `{"binId":"BIN-001","weight":1}`, bearer(auth))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Forbidden"}`, rec.Body.String())
}

// ── body hash ────────────────────────────────────────────────────────────────

func TestMutations_BodyHash(t *testing.T) {
	const body = `{"type":"payment","amount":5}`
	hasher := utils.NewHasher(testHashKey)

	tests := []struct {
		name       string
		signature  string
		wantStatus int
		wantCalls  int
	}{
		{name: "valid signature", signature: hasher.HexSum([]byte(body)), wantStatus: http.StatusCreated, wantCalls: 1},
		{name: "no signature", signature: "", wantStatus: http.StatusCreated, wantCalls: 1},
		{name: "tampered body", signature: hasher.HexSum([]byte(`{"type":"payment","amount":500}`)), wantStatus: http.StatusBadRequest},
		{name: "not hex", signature: "zz", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, d := newTestHandler(t, testHashKey)
			auth := d.signIn(7, models.RoleResident)
			d.txs.EXPECT().Pay(gomock.Any(), gomock.Any()).Return(models.Transaction{ID: "t1"}, false, nil).Times(tt.wantCalls)

			headers := bearer(auth)
			if tt.signature != "" {
				headers[utils.HashHeader] = tt.signature
			}
			rec := serve(t, h.Init(), http.MethodPost, "/api/transactions/pay", body, headers)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusBadRequest {
				assert.JSONEq(t, `{"message":"body hash mismatch"}`, rec.Body.String())
			}
		})
	}
}
