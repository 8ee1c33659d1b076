package ports

// Server defines the interface for the gateway's request transport
type Server interface {
	// Start starts accepting requests
	Start() error

	// Stop stops the server gracefully
	Stop() error
}
