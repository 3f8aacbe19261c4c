package models

import "time"

// QueueArea is a feature area with its own offline queue.
type QueueArea string

const (
	QueueCollections QueueArea = "collections"
	QueuePickups     QueueArea = "pickups"
	QueuePayments    QueueArea = "payments"
)

// QueueAreas lists every queue in flush order.
var QueueAreas = []QueueArea{QueueCollections, QueuePickups, QueuePayments}

// ReferencePrefix is the prefix of client references generated for the area.
func (a QueueArea) ReferencePrefix() string {
	switch a {
	case QueueCollections:
		return "collection"
	case QueuePickups:
		return "pickup"
	case QueuePayments:
		return "payment"
	}
	return string(a)
}

// Payload is the JSON body of a queued mutation.
type Payload map[string]any

// PendingMutation is a write waiting for the server.
type PendingMutation struct {
	LocalID       string     `json:"localId"`
	Payload       Payload    `json:"payload"`
	EnqueuedAt    time.Time  `json:"enqueuedAt"`
	Attempts      int        `json:"attempts"`
	NextAttemptAt *time.Time `json:"nextAttemptAt,omitempty"`
	LastError     string     `json:"lastError,omitempty"`
}

// ClientReference returns the idempotency token of the payload.
func (m PendingMutation) ClientReference() string {
	ref, _ := m.Payload["clientReference"].(string)
	return ref
}

// Disposition is the decision taken on a failed submission.
type Disposition int

const (
	// Retry keeps the entry and counts the attempt.
	Retry Disposition = iota
	// DeadLetter moves the entry out of the queue.
	DeadLetter
	// Hold keeps the entry without counting the attempt.
	Hold
)

// FlushReport summarizes one pass over a queue.
type FlushReport struct {
	Area         QueueArea `json:"area"`
	Attempted    int       `json:"attempted"`
	Submitted    int       `json:"submitted"`
	Duplicates   int       `json:"duplicates"`
	Failed       int       `json:"failed"`
	DeadLettered int       `json:"deadLettered"`
	Skipped      int       `json:"skipped"`
	Unauthorized bool      `json:"unauthorized,omitempty"`
}

// Removed reports how many entries left the queue during the pass.
func (r FlushReport) Removed() int {
	return r.Submitted + r.Duplicates + r.DeadLettered
}
