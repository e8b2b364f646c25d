// Package service runs long-lived subsystems (audio, history, ssh) through one lifecycle.
package service

// Service is the lifecycle of an infrastructure subsystem
//
// Lifecycle:
//  1. Construction
//  2. Init(args...) - configuration from the parsed config
//  3. Start() - launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init and Start first
	Dependencies() []string

	// Init configures the service; args are passed through from Hub.InitAll
	Init(args ...any) error

	// Start begins service operation
	Start() error

	// Stop halts the service; must be idempotent
	Stop() error
}
