package models

// ReminderKind groups reminders by source entity.
type ReminderKind string

const (
	ReminderBinFull         ReminderKind = "bins"
	ReminderPickupScheduled ReminderKind = "pickups"
	ReminderPaymentPending  ReminderKind = "payments"
)

// Reminder is one notification produced from the cache.
type Reminder struct {
	Kind     ReminderKind
	EntityID string
	Title    string
	Body     string
}

// ReminderTracker remembers which ids were already notified.
type ReminderTracker struct {
	Bins     []string `json:"bins"`
	Pickups  []string `json:"pickups"`
	Payments []string `json:"payments"`
}
