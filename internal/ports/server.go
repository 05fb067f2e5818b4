package ports

// Server defines the lifecycle contract every request boundary (HTTP API,
// SMTP gateway) implements.
type Server interface {
	// Start begins serving requests; it must not block.
	Start() error

	// Stop shuts the boundary down.
	Stop() error
}
