// Package convert turns a host's nested dynamic settings into a
// configuration tree.
//
// Accepted input: string-keyed mappings whose values are null, bool,
// integers, floats, strings, sequences whose elements share one runtime
// type (int, float or string), or nested mappings of the same shape.
// Conversion is fail-fast: the first offending value aborts the build and
// the returned error carries the slash separated path to it, for example
// /Scanner/scanners/random/points.
package convert
