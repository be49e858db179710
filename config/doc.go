// Package config loads the service configuration from an optional YAML file,
// an optional .env file and environment variables. It covers the listen
// address, the source CSV path and its column mapping, rate limiting, metrics
// and logging.
package config
