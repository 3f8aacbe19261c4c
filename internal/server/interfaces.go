package server

// Server runs the REST API, the optional gRPC health service and the
// background workers as one unit.
type Server interface {
	// RunServer blocks until SIGTERM, SIGINT or SIGQUIT, then drains.
	RunServer()

	Shutdown()
}
