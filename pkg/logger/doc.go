// Package logger builds the service's structured slog logger: JSON output in
// production, human-readable text elsewhere, with the environment and service
// name attached to every record.
package logger
