// Package config loads CLI defaults from local and global YAML files with
// precedence rules. It is internal; CLI code maps flags and files into
// scan options.
package config
