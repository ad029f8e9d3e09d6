package ports

import "io"

// Logger defines the structured logging interface for the application.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string)

	// Info logs an informational message.
	Info(msg string)

	// Warn logs a warning message.
	Warn(msg string)

	// Error logs an error.
	Error(err error)

	// SetOutput updates the logger's output destination.
	SetOutput(w io.Writer)

	// SetJSON switches between JSON and pretty logging.
	SetJSON(enable bool)
}
