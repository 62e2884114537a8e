// Package annotation defines the lifecycle markers a suite type attaches to
// its methods.
//
// Three markers exist:
//   - BeforeSuite: the single method run once before every test
//   - AfterSuite: the single method run once after every test
//   - Test: a test method, optionally carrying a Priority
//
// Go methods cannot carry annotations, so a suite declares its markers by
// implementing Annotated. The order of the returned marks is the declaration
// order used to break priority ties.
package annotation
