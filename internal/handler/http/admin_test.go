package http

import (
	"net/http"
	"testing"

	"github.com/MKhiriev/go-waste-sync/internal/service"
	"github.com/MKhiriev/go-waste-sync/internal/store"
	"github.com/MKhiriev/go-waste-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── bins ─────────────────────────────────────────────────────────────────────

func TestCreateBin(t *testing.T) {
	const body = `{"binId":"BIN-9","type":"recyclable","location":"Park rd","currentLevel":10}`
	req := models.CreateBinRequest{BinID: "BIN-9", Type: models.BinTypeRecyclable, Location: "Park rd", CurrentLevel: 10}

	t.Run("admin creates", func(t *testing.T) {
		h, d := newTestHandler(t, "")
		auth := d.signIn(1, models.RoleAdmin)
		d.bins.EXPECT().CreateBin(gomock.Any(), req).
			Return(models.Bin{ID: "b9", BinID: "BIN-9", Type: models.BinTypeRecyclable, Location: "Park rd", CurrentLevel: 10}, nil)

		rec := serve(t, h.Init(), http.MethodPost, "/api/bins", body, bearer(auth))

		require.Equal(t, http.StatusCreated, rec.Code)
		var bin models.Bin
		decodeBody(t, rec.Body.Bytes(), &bin)
		assert.Equal(t, "b9", bin.ID)
	})

	t.Run("binId taken", func(t *testing.T) {
		h, d := newTestHandler(t, "")
		auth := d.signIn(1, models.RoleAdmin)
		d.bins.EXPECT().CreateBin(gomock.Any(), req).Return(models.Bin{}, store.ErrBinAlreadyExists)

		rec := serve(t, h.Init(), http.MethodPost, "/api/bins", body, bearer(auth))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.JSONEq(t, `{"message":"binId already exists"}`, rec.Body.String())
	})

	for _, role := range []models.Role{models.RoleStaff, models.RoleResident} {
		t.Run(string(role)+" forbidden", func(t *testing.T) {
			h, d := newTestHandler(t, "")
			auth := d.signIn(2, role)
			d.bins.EXPECT().CreateBin(gomock.Any(), gomock.Any()).Times(0)

			rec := serve(t, h.Init(), http.MethodPost, "/api/bins", body, bearer(auth))

			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestListBins_Scope(t *testing.T) {
	h, d := newTestHandler(t, "")
	auth := d.signIn(7, models.RoleResident)
	owner := int64(7)
	d.bins.EXPECT().ListBins(gomock.Any(), models.SyncRequest{UserID: 7, Role: models.RoleResident}).
		Return([]models.Bin{{ID: "b1", BinID: "BIN-1", OwnerID: &owner}}, nil)

	rec := serve(t, h.Init(), http.MethodGet, "/api/bins", "", bearer(auth))

	require.Equal(t, http.StatusOK, rec.Code)
	var bins []models.Bin
	decodeBody(t, rec.Body.Bytes(), &bins)
	require.Len(t, bins, 1)
	assert.Equal(t, "BIN-1", bins[0].BinID)
}

// ── bulk updates ─────────────────────────────────────────────────────────────

func TestBulkUpdates(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		setup    func(d *testDeps)
		wantBody string
	}{
		{
			name: "pickups",
			path: "/api/pickups/bulk",
			body: `{"ids":["p1","p2"],"status":"scheduled"}`,
			setup: func(d *testDeps) {
				status := models.PickupScheduled
				d.pickups.EXPECT().BulkUpdate(gomock.Any(), models.BulkPickupUpdate{IDs: []string{"p1", "p2"}, Status: &status}).
					Return(models.BulkResult[models.Pickup]{ModifiedCount: 0}, nil)
			},
			wantBody: `{"modifiedCount":0,"updated":[]}`,
		},
		{
			name: "transactions",
			path: "/api/transactions/bulk",
			body: `{"ids":["t1"],"status":"paid"}`,
			setup: func(d *testDeps) {
				status := models.TransactionPaid
				d.txs.EXPECT().BulkUpdate(gomock.Any(), models.BulkTransactionUpdate{IDs: []string{"t1"}, Status: &status}).
					Return(models.BulkResult[models.Transaction]{
						ModifiedCount: 1,
						Updated:       []models.Transaction{{ID: "t1", Status: models.TransactionPaid}},
					}, nil)
			},
			wantBody: `{"modifiedCount":1,"updated":[{"id":"t1","userId":0,"type":"","amount":0,"status":"paid","createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z"}]}`,
		},
		{
			name: "bins",
			path: "/api/bins/bulk",
			body: `{"ids":["b1"],"currentLevel":0}`,
			setup: func(d *testDeps) {
				level := 0
				d.bins.EXPECT().BulkUpdate(gomock.Any(), models.BulkBinUpdate{IDs: []string{"b1"}, CurrentLevel: &level}).
					Return(models.BulkResult[models.Bin]{ModifiedCount: 1, Updated: []models.Bin{{ID: "b1", BinID: "BIN-1"}}}, nil)
			},
			wantBody: `{"modifiedCount":1,"updated":[{"id":"b1","binId":"BIN-1","type":"","location":"","currentLevel":0,"createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, d := newTestHandler(t, "")
			auth := d.signIn(3, models.RoleStaff)
			tt.setup(d)

			rec := serve(t, h.Init(), http.MethodPatch, tt.path, tt.body, bearer(auth))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestBulkUpdates_ResidentForbidden(t *testing.T) {
	for _, path := range []string{"/api/pickups/bulk", "/api/transactions/bulk", "/api/bins/bulk"} {
		t.Run(path, func(t *testing.T) {
			h, d := newTestHandler(t, "")
			auth := d.signIn(7, models.RoleResident)

			rec := serve(t, h.Init(), http.MethodPatch, path, `{"ids":["x"]}`, bearer(auth))

			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}

func TestBulkUpdates_EmptyIDs(t *testing.T) {
	h, d := newTestHandler(t, "")
	auth := d.signIn(1, models.RoleAdmin)
	d.pickups.EXPECT().BulkUpdate(gomock.Any(), gomock.Any()).
		Return(models.BulkResult[models.Pickup]{}, service.ErrInvalidDataProvided)

	rec := serve(t, h.Init(), http.MethodPatch, "/api/pickups/bulk", `{"ids":[]}`, bearer(auth))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ── stats ────────────────────────────────────────────────────────────────────

func TestCollectionStats_Days(t *testing.T) {
	tests := []struct {
		query    string
		wantDays int
	}{
		{query: "", wantDays: 0},
		{query: "?days=30", wantDays: 30},
		{query: "?days=week", wantDays: 0},
		{query: "?days=1000", wantDays: 1000},
	}

	for _, tt := range tests {
		t.Run("days"+tt.query, func(t *testing.T) {
			h, d := newTestHandler(t, "")
			auth := d.signIn(1, models.RoleAdmin)
			d.collections.EXPECT().Stats(gomock.Any(), tt.wantDays).
				Return(models.CollectionStats{Days: service.ClampStatsDays(tt.wantDays)}, nil)

			rec := serve(t, h.Init(), http.MethodGet, "/api/collections/stats"+tt.query, "", bearer(auth))

			require.Equal(t, http.StatusOK, rec.Code)
			var stats models.CollectionStats
			decodeBody(t, rec.Body.Bytes(), &stats)
			assert.Equal(t, service.ClampStatsDays(tt.wantDays), stats.Days)
		})
	}
}

func TestCollectionStats_AnySignedInRole(t *testing.T) {
	h, d := newTestHandler(t, "")
	auth := d.signIn(7, models.RoleResident)
	d.collections.EXPECT().Stats(gomock.Any(), 0).Return(models.CollectionStats{Days: 7}, nil)

	rec := serve(t, h.Init(), http.MethodGet, "/api/collections/stats", "", bearer(auth))

	assert.Equal(t, http.StatusOK, rec.Code)
}
