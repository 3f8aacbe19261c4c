// Package http implements the REST transport of the sync server.
//
// It exposes route wiring, request handlers, and middleware. Authentication
// and role checks, request tracing, access logging, response compression and
// body integrity checks run here before requests reach the service layer.
package http
