package models

import "time"

// CreatePickupRequest is the body of POST /api/pickups.
type CreatePickupRequest struct {
	UserID          int64      `json:"-"`
	WasteType       WasteType  `json:"wasteType"`
	Description     string     `json:"description,omitempty"`
	ScheduledDate   *time.Time `json:"scheduledDate,omitempty"`
	ClientReference string     `json:"clientReference,omitempty"`
}

// PayRequest is the body of POST /api/transactions/pay.
type PayRequest struct {
	UserID          int64           `json:"-"`
	Type            TransactionType `json:"type"`
	Amount          float64         `json:"amount"`
	ClientReference string          `json:"clientReference,omitempty"`
}

// ScanRequest is the body of POST /api/collections/scan.
// Weight is a pointer so that a missing value can be told from zero.
type ScanRequest struct {
	CollectorID     int64           `json:"-"`
	BinID           string          `json:"binId"`
	Weight          *float64        `json:"weight"`
	ClientReference string          `json:"clientReference,omitempty"`
	Timestamp       *time.Time      `json:"timestamp,omitempty"`
	Location        *DeviceLocation `json:"location,omitempty"`
}

// CreateBinRequest is the body of POST /api/bins.
type CreateBinRequest struct {
	BinID        string       `json:"binId"`
	Type         BinType      `json:"type"`
	Location     string       `json:"location"`
	CurrentLevel int          `json:"currentLevel"`
	OwnerID      *int64       `json:"ownerId,omitempty"`
	GeoLocation  *GeoLocation `json:"geoLocation,omitempty"`
}

// BulkPickupUpdate is the body of PATCH /api/pickups/bulk.
type BulkPickupUpdate struct {
	IDs           []string      `json:"ids"`
	Status        *PickupStatus `json:"status,omitempty"`
	ScheduledDate *time.Time    `json:"scheduledDate,omitempty"`
}

// BulkTransactionUpdate is the body of PATCH /api/transactions/bulk.
type BulkTransactionUpdate struct {
	IDs    []string           `json:"ids"`
	Status *TransactionStatus `json:"status,omitempty"`
}

// BulkBinUpdate is the body of PATCH /api/bins/bulk.
type BulkBinUpdate struct {
	IDs          []string `json:"ids"`
	CurrentLevel *int     `json:"currentLevel,omitempty"`
}

// BulkResult is returned by every bulk endpoint.
type BulkResult[T any] struct {
	ModifiedCount int `json:"modifiedCount"`
	Updated       []T `json:"updated"`
}

// ScanResult is the outcome of a recorded or replayed scan.
type ScanResult struct {
	Record          CollectionRecord
	DistanceFromBin *float64
	Duplicate       bool
}

// BinUpdate carries the bin side effects of a scan applied in the same
// transaction as the record insert.
type BinUpdate struct {
	ID           string
	CurrentLevel int
	GeoLocation  *GeoLocation
}
