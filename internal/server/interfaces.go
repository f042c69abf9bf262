package server

// Server is the lifecycle contract of the HTTP transport. RunServer blocks
// until a stop signal arrives; Shutdown drains in-flight requests and
// releases the listener.
type Server interface {
	RunServer()
	Shutdown()
}
