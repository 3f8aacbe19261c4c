// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// BinType is the waste stream a bin accepts.
type BinType string

const (
	BinTypeGeneral    BinType = "general"
	BinTypeRecyclable BinType = "recyclable"
)

// Valid reports whether t is a known bin type.
func (t BinType) Valid() bool {
	return t == BinTypeGeneral || t == BinTypeRecyclable
}

// WasteType is the kind of waste a pickup is requested for.
type WasteType string

const (
	WasteTypeGeneral    WasteType = "general"
	WasteTypeRecyclable WasteType = "recyclable"
	WasteTypeOrganic    WasteType = "organic"
	WasteTypeEWaste     WasteType = "ewaste"
	WasteTypeBulky      WasteType = "bulky"
)

// Valid reports whether t is a known waste type.
func (t WasteType) Valid() bool {
	switch t {
	case WasteTypeGeneral, WasteTypeRecyclable, WasteTypeOrganic, WasteTypeEWaste, WasteTypeBulky:
		return true
	}
	return false
}

// PickupStatus is the lifecycle state of a pickup request.
type PickupStatus string

const (
	PickupPending   PickupStatus = "pending"
	PickupScheduled PickupStatus = "scheduled"
	PickupCompleted PickupStatus = "completed"
	PickupRejected  PickupStatus = "rejected"
)

// Valid reports whether s is a known pickup status.
func (s PickupStatus) Valid() bool {
	switch s {
	case PickupPending, PickupScheduled, PickupCompleted, PickupRejected:
		return true
	}
	return false
}

// TransactionType tells a charge from a reward payout.
type TransactionType string

const (
	TransactionPayment TransactionType = "payment"
	TransactionPayback TransactionType = "payback"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionPayment || t == TransactionPayback
}

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	TransactionPending TransactionStatus = "pending"
	TransactionPaid    TransactionStatus = "paid"
	TransactionFailed  TransactionStatus = "failed"
)

// Valid reports whether s is a known transaction status.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionPending, TransactionPaid, TransactionFailed:
		return true
	}
	return false
}

// GeoLocation is the learned or configured position of a bin.
type GeoLocation struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Accuracy  *float64   `json:"accuracy,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// DeviceLocation is the position reported by a collector's device during a
// scan. Any coordinate may be missing.
type DeviceLocation struct {
	Latitude   *float64   `json:"latitude,omitempty"`
	Longitude  *float64   `json:"longitude,omitempty"`
	Accuracy   *float64   `json:"accuracy,omitempty"`
	CapturedAt *time.Time `json:"capturedAt,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
func (d *DeviceLocation) HasCoordinates() bool {
	return d != nil && d.Latitude != nil && d.Longitude != nil
}

// AccuracyOrZero returns the reported accuracy in meters or 0.
func (d *DeviceLocation) AccuracyOrZero() float64 {
	if d == nil || d.Accuracy == nil {
		return 0
	}
	return *d.Accuracy
}

// Bin is a tracked waste bin.
type Bin struct {
	ID           string       `json:"id"`
	BinID        string       `json:"binId"`
	Type         BinType      `json:"type"`
	Location     string       `json:"location"`
	CurrentLevel int          `json:"currentLevel"`
	OwnerID      *int64       `json:"ownerId,omitempty"`
	GeoLocation  *GeoLocation `json:"geoLocation,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Pickup is a resident's request to collect waste.
type Pickup struct {
	ID              string       `json:"id"`
	UserID          int64        `json:"userId"`
	WasteType       WasteType    `json:"wasteType"`
	Description     string       `json:"description,omitempty"`
	Status          PickupStatus `json:"status"`
	ScheduledDate   *time.Time   `json:"scheduledDate,omitempty"`
	ClientReference string       `json:"clientReference,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// Transaction is a payment made by or paid out to a user.
type Transaction struct {
	ID              string            `json:"id"`
	UserID          int64             `json:"userId"`
	Type            TransactionType   `json:"type"`
	Amount          float64           `json:"amount"`
	Status          TransactionStatus `json:"status"`
	ClientReference string            `json:"clientReference,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// BinRef is the compact bin view embedded into collection records.
type BinRef struct {
	ID    string `json:"id"`
	BinID string `json:"binId,omitempty"`
}

// UserRef is the compact user view embedded into collection records.
type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// CollectionRecord is an append-only record of a bin being emptied.
type CollectionRecord struct {
	ID              string          `json:"id"`
	Bin             BinRef          `json:"bin"`
	CollectedBy     UserRef         `json:"collectedBy"`
	Weight          float64         `json:"weight"`
	Timestamp       time.Time       `json:"timestamp"`
	Location        *DeviceLocation `json:"location,omitempty"`
	DistanceFromBin *float64        `json:"distanceFromBin,omitempty"`
	ClientReference string          `json:"clientReference,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
