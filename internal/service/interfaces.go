package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-waste-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

type AuthService interface {
	RegisterUser(ctx context.Context, req models.AuthRequest) (models.User, error)
	Login(ctx context.Context, req models.AuthRequest) (models.User, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// SyncService answers delta queries.
type SyncService interface {
	GetUpdates(ctx context.Context, req models.SyncRequest) (models.SyncResponse, error)
}

type PickupService interface {
	// CreatePickup is idempotent on ClientReference; duplicate reports a replay.
	CreatePickup(ctx context.Context, req models.CreatePickupRequest) (pickup models.Pickup, duplicate bool, err error)
	ListPickups(ctx context.Context, req models.SyncRequest) ([]models.Pickup, error)
	BulkUpdate(ctx context.Context, update models.BulkPickupUpdate) (models.BulkResult[models.Pickup], error)
}

type TransactionService interface {
	// Pay is idempotent on ClientReference; duplicate reports a replay.
	Pay(ctx context.Context, req models.PayRequest) (tx models.Transaction, duplicate bool, err error)
	ListTransactions(ctx context.Context, req models.SyncRequest) ([]models.Transaction, error)
	BulkUpdate(ctx context.Context, update models.BulkTransactionUpdate) (models.BulkResult[models.Transaction], error)
}

type CollectionService interface {
	// Scan records a bin collection. A device too far from the bin yields a
	// *GeofenceError.
	Scan(ctx context.Context, req models.ScanRequest) (models.ScanResult, error)
	Stats(ctx context.Context, days int) (models.CollectionStats, error)
}

type BinService interface {
	CreateBin(ctx context.Context, req models.CreateBinRequest) (models.Bin, error)
	ListBins(ctx context.Context, req models.SyncRequest) ([]models.Bin, error)
	BulkUpdate(ctx context.Context, update models.BulkBinUpdate) (models.BulkResult[models.Bin], error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// HealthService reports whether the server can reach its database.
type HealthService interface {
	Check(ctx context.Context) error
}

// SnapshotService produces compressed full-dataset backups.
type SnapshotService interface {
	TakeSnapshot(ctx context.Context) (name string, size int, err error)
}

// Clock returns the current time. Injected so that tests can pin serverTime.
type Clock func() time.Time
