package factory

import (
	"fmt"
	"sort"

	"github.com/scanbit/scanbit/internal/scanner"
	"github.com/scanbit/scanbit/internal/scanner/de"
	"github.com/scanbit/scanbit/internal/scanner/grid"
	"github.com/scanbit/scanbit/internal/scanner/random"
)

type builder func(scanner.Options) (scanner.Scanner, error)

var plugins = map[string]builder{
	"random": func(o scanner.Options) (scanner.Scanner, error) { return random.New(o), nil },
	"grid":   func(o scanner.Options) (scanner.Scanner, error) { return grid.New(o) },
	"de":     func(o scanner.Options) (scanner.Scanner, error) { return de.New(o) },
}

// New creates the named scanner plugin.
func New(plugin string, opts scanner.Options) (scanner.Scanner, error) {
	build, ok := plugins[plugin]
	if !ok {
		return nil, fmt.Errorf("unknown scanner plugin %q (available: %v)", plugin, Plugins())
	}
	s, err := build(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s scanner: %w", plugin, err)
	}
	return s, nil
}

// Plugins lists the available plugin names.
// This is used for help and completion without building a scanner.
func Plugins() []string {
	out := make([]string, 0, len(plugins))
	for name := range plugins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
