// Package college loads college cost records from a CSV file into an
// immutable in-memory Catalog.
//
// Fields are located by header name, not by position. The mapping from
// logical fields to header names is described by Columns and checked before
// any row is read: a mapped header that is missing from the file fails the
// load.
//
// Tuition values are parsed leniently. Leading whitespace is skipped and the
// longest numeric prefix is used, so "12000 USD" reads as 12000. A value with
// no numeric prefix becomes 0. The room & board value is kept as written and
// only converted when a cost is computed.
//
// Example usage:
//
//	loader := college.NewLoader(college.DefaultColumns(), logger)
//	catalog, err := loader.LoadFile(ctx, "./database/college_costs.csv")
//	if err != nil {
//		return err
//	}
//	catalog.Each(func(c college.College) { ... })
package college
