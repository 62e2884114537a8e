// Package registry maps fully-qualified type names to suite types and their
// zero-argument constructors.
//
// Suites register themselves from init functions:
//
//	func init() {
//	    registry.RegisterFactory(New)
//	}
//
// A registered suite resolves by its full name ("example.com/pkg.Suite") and
// by its short name ("pkg.Suite") as long as the short name is unique.
package registry
