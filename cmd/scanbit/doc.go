// Package scanbit provides the command-line interface for scanbit. It
// configures subcommands (scan, scan-file, tree, runs, config, etc.),
// parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/scanbit/scanbit/cmd/scanbit"
//	func main() { scanbit.Execute() }
package scanbit
