// Package search validates college search parameters and runs them against a
// college.Catalog.
//
// ParseParams turns raw query values into Params, collecting every rule that
// fails into a single *ValidationError. Search scans the catalog once and
// projects each match to a Result whose cost is the in-state tuition, plus
// room & board unless the caller opts out, formatted with two decimals.
package search
