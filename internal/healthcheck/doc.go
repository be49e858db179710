// Package healthcheck serves the service health report: whether the college
// catalog is loaded, how many records it holds and where it was read from.
package healthcheck
