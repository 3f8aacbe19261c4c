package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-waste-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository stores accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// BinRepository stores bins. ListBins honours the ownership and watermark
// filters carried in the request.
type BinRepository interface {
	CreateBin(ctx context.Context, bin models.Bin) (models.Bin, error)
	FindBinByBinID(ctx context.Context, binID string) (models.Bin, error)
	ListBins(ctx context.Context, req models.SyncRequest) ([]models.Bin, error)
	BulkUpdateBins(ctx context.Context, update models.BulkBinUpdate) ([]models.Bin, error)
}

// PickupRepository stores pickup requests.
type PickupRepository interface {
	CreatePickup(ctx context.Context, pickup models.Pickup) (models.Pickup, error)
	FindPickupByClientReference(ctx context.Context, ref string) (models.Pickup, error)
	ListPickups(ctx context.Context, req models.SyncRequest) ([]models.Pickup, error)
	BulkUpdatePickups(ctx context.Context, update models.BulkPickupUpdate) ([]models.Pickup, error)
}

// TransactionRepository stores payments and paybacks.
type TransactionRepository interface {
	CreateTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	FindTransactionByClientReference(ctx context.Context, ref string) (models.Transaction, error)
	ListTransactions(ctx context.Context, req models.SyncRequest) ([]models.Transaction, error)
	BulkUpdateTransactions(ctx context.Context, update models.BulkTransactionUpdate) ([]models.Transaction, error)
}

// CollectionRepository stores collection records.
type CollectionRepository interface {
	// RecordCollection inserts the record and applies the bin update in a
	// single transaction.
	RecordCollection(ctx context.Context, record models.CollectionRecord, bin models.BinUpdate) (models.CollectionRecord, error)
	FindCollectionByClientReference(ctx context.Context, ref string) (models.CollectionRecord, error)
	ListCollections(ctx context.Context, since *time.Time) ([]models.CollectionRecord, error)
}

// StatsRepository runs the aggregate queries behind the stats endpoint.
type StatsRepository interface {
	CollectionTotals(ctx context.Context, since time.Time) (models.CollectionTotals, error)
	CollectionSeries(ctx context.Context, since time.Time) ([]SeriesRow, error)
	CollectorTotals(ctx context.Context, since time.Time) ([]models.CollectorTotal, error)
	BinHotspots(ctx context.Context, since time.Time) ([]models.BinHotspot, error)
	PickupStatusCounts(ctx context.Context, since time.Time) ([]models.StatusCount, error)
	TransactionStatusCounts(ctx context.Context, since time.Time) ([]models.StatusCount, error)
}

// SnapshotSink receives compressed database snapshots.
type SnapshotSink interface {
	Put(ctx context.Context, name string, data []byte) error
	Name() string
}

// HealthChecker reports database reachability.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}
