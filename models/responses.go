package models

// MessageResponse is the generic JSON error body.
type MessageResponse struct {
	Message string `json:"message"`
}

// GeofenceErrorResponse is returned when a scan is rejected by distance.
type GeofenceErrorResponse struct {
	Message         string  `json:"message"`
	DistanceFromBin float64 `json:"distanceFromBin"`
}

// PickupResponse is returned by POST /api/pickups.
type PickupResponse struct {
	Message   string `json:"message"`
	Pickup    Pickup `json:"pickup"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// TransactionResponse is returned by POST /api/transactions/pay.
type TransactionResponse struct {
	Message     string      `json:"message"`
	Transaction Transaction `json:"transaction"`
	Duplicate   bool        `json:"duplicate,omitempty"`
}

// ScanResponse is returned by POST /api/collections/scan.
type ScanResponse struct {
	Message         string           `json:"message"`
	Record          CollectionRecord `json:"record"`
	DistanceFromBin *float64         `json:"distanceFromBin"`
	Duplicate       bool             `json:"duplicate,omitempty"`
}

// WriteAck is the part of a mutation response the client queue inspects.
type WriteAck struct {
	Message   string `json:"message"`
	Duplicate bool   `json:"duplicate"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status string `json:"status"`
}
