// Package tree holds the configuration tree handed to a scan engine.
//
// A Node is a tagged variant: null, bool, int, float, string, a
// homogeneous int/float/string array, or a string-keyed map that keeps
// insertion order. Trees render to YAML with arrays in flow style and
// booleans as the literal tokens true/false, and load back from YAML for
// file-sourced scans.
package tree
