package models

// ConnectivityState is the reachability of the server as seen by the client.
type ConnectivityState string

const (
	ConnectivityUnknown ConnectivityState = "unknown"
	ConnectivityOnline  ConnectivityState = "online"
	ConnectivityOffline ConnectivityState = "offline"
)
