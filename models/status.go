package models

import "time"

// ClientStatus is the device state shown by the client status command.
type ClientStatus struct {
	Connectivity ConnectivityState  `json:"connectivity"`
	User         *User              `json:"user,omitempty"`
	LastSync     *time.Time         `json:"lastSync"`
	LastError    string             `json:"lastError,omitempty"`
	Cached       map[EntityType]int `json:"cached"`
	Pending      map[QueueArea]int  `json:"pending"`
	DeadLetters  map[QueueArea]int  `json:"deadLetters"`
}
