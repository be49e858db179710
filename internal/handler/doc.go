// Package handler implements the college search endpoint. It validates query
// parameters, runs the search and maps the outcome to a JSON response or an
// opaque server error.
package handler
