// Package application provides application initialization and dependency wiring.
// It encapsulates the creation of the dispatcher, reporter and onboarding loop,
// and maps run errors to exit codes, keeping the main packages focused on
// CLI parsing and orchestration.
package application
