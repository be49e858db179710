// Package httpserver runs the HTTP listener and provides the middleware that
// wraps every route: request ids, panic recovery, rate limiting, access logs
// and Prometheus instrumentation.
package httpserver
