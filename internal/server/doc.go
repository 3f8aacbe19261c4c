// Package server runs the sync server process: the chi REST router behind an
// http.Server with a request timeout, the gRPC health endpoint when an
// address is configured, and the snapshot workers. All of them stop together
// on a termination signal.
package server
