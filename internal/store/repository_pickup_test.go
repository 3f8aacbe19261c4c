package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-waste-sync/internal/logger"
	"github.com/MKhiriev/go-waste-sync/models"
)

var pickupCols = []string{"id", "user_id", "waste_type", "description", "status", "scheduled_date", "client_reference", "created_at", "updated_at"}

func TestCreatePickup_DuplicateReference(t *testing.T) {
	d, mock, db := newTestDB(t)
	defer db.Close()
	repo := NewPickupRepository(d, logger.Nop())

	mock.ExpectQuery("INSERT INTO pickups").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreatePickup(context.Background(), models.Pickup{ID: "p1", ClientReference: "pickup-1"})
	assert.ErrorIs(t, err, ErrDuplicateClientReference)
}

func TestCreatePickup_ForeignKeyViolation(t *testing.T) {
	d, mock, db := newTestDB(t)
	defer db.Close()
	repo := NewPickupRepository(d, logger.Nop())

	mock.ExpectQuery("INSERT INTO pickups").
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.CreatePickup(context.Background(), models.Pickup{ID: "p1"})
	assert.ErrorIs(t, err, ErrReferencedRowMissing)
}

func TestCreatePickup_ReturnsTimestamps(t *testing.T) {
	d, mock, db := newTestDB(t)
	defer db.Close()
	repo := NewPickupRepository(d, logger.Nop())
	now := time.Now()

	mock.ExpectQuery("INSERT INTO pickups").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	p, err := repo.CreatePickup(context.Background(), models.Pickup{ID: "p1", UserID: 4, WasteType: models.WasteTypeBulky, Status: models.PickupPending})
	require.NoError(t, err)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, models.WasteTypeBulky, p.WasteType)
}

func TestFindPickupByClientReference(t *testing.T) {
	d, mock, db := newTestDB(t)
	defer db.Close()
	repo := NewPickupRepository(d, logger.Nop())
	now := time.Now()

	mock.ExpectQuery("SELECT id, user_id").
		WithArgs("pickup-1").
		WillReturnRows(sqlmock.NewRows(pickupCols).AddRow("p1", 4, "organic", "", "pending", nil, "pickup-1", now, now))

	p, err := repo.FindPickupByClientReference(context.Background(), "pickup-1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Nil(t, p.ScheduledDate)
	assert.Equal(t, "pickup-1", p.ClientReference)
}

func TestBulkUpdatePickups_ReturnsUpdatedRows(t *testing.T) {
	d, mock, db := newTestDB(t)
	defer db.Close()
	repo := NewPickupRepository(d, logger.Nop())
	now := time.Now()
	status := models.PickupCompleted

	mock.ExpectQuery("UPDATE pickups SET").
		WithArgs("completed", "p1", "p2", "unknown").
		WillReturnRows(sqlmock.NewRows(pickupCols).
			AddRow("p1", 4, "organic", "", "completed", now, nil, now, now).
			AddRow("p2", 5, "general", "", "completed", nil, nil, now, now))

	updated, err := repo.BulkUpdatePickups(context.Background(), models.BulkPickupUpdate{
		IDs:    []string{"p1", "p2", "unknown"},
		Status: &status,
	})
	require.NoError(t, err)
	assert.Len(t, updated, 2)
	assert.NotNil(t, updated[0].ScheduledDate)
}

func TestListTransactions_QueryError(t *testing.T) {
	d, mock, db := newTestDB(t)
	defer db.Close()
	repo := NewTransactionRepository(d, logger.Nop())

	mock.ExpectQuery("SELECT id, user_id").
		WillReturnError(errors.New("boom"))

	_, err := repo.ListTransactions(context.Background(), models.SyncRequest{UserID: 1, Role: models.RoleResident})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestCreateBin_Conflict(t *testing.T) {
	d, mock, db := newTestDB(t)
	defer db.Close()
	repo := NewBinRepository(d, logger.Nop())

	mock.ExpectQuery("INSERT INTO bins").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateBin(context.Background(), models.Bin{ID: "b1", BinID: "BIN-001"})
	assert.ErrorIs(t, err, ErrBinAlreadyExists)
}

func TestFindBinByBinID_GeoLocationOptional(t *testing.T) {
	d, mock, db := newTestDB(t)
	defer db.Close()
	repo := NewBinRepository(d, logger.Nop())
	now := time.Now()

	mock.ExpectQuery("SELECT id, bin_id").
		WithArgs("BIN-001").
		WillReturnRows(sqlmock.NewRows(binColumns).
			AddRow("b1", "BIN-001", "general", "Main St", 40, 7, nil, nil, nil, nil, now, now))

	bin, err := repo.FindBinByBinID(context.Background(), "BIN-001")
	require.NoError(t, err)
	assert.Nil(t, bin.GeoLocation)
	require.NotNil(t, bin.OwnerID)
	assert.Equal(t, int64(7), *bin.OwnerID)
}

func TestFindBinByBinID_NotFound(t *testing.T) {
	d, mock, db := newTestDB(t)
	defer db.Close()
	repo := NewBinRepository(d, logger.Nop())

	mock.ExpectQuery("SELECT id, bin_id").
		WithArgs("BIN-404").
		WillReturnRows(sqlmock.NewRows(binColumns))

	_, err := repo.FindBinByBinID(context.Background(), "BIN-404")
	assert.ErrorIs(t, err, ErrBinNotFound)
}
