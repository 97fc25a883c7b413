package scanbit

import (
	"fmt"
	"strconv"
	"strings"
)

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

// pickInt64 reports whether any source set the value, so that zero can be
// chosen explicitly.
func pickInt64(cli int64, cliSet bool, local, global *int64) (int64, bool) {
	if cliSet {
		return cli, true
	}
	if local != nil {
		return *local, true
	}
	if global != nil {
		return *global, true
	}
	return 0, false
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// paramFlag is one --param model::name=lo:hi[:prior].
type paramFlag struct {
	Model string
	Name  string
	Lo    float64
	Hi    float64
	Prior string
}

func parseParamFlag(s string) (paramFlag, error) {
	var p paramFlag
	full, spec, ok := strings.Cut(s, "=")
	if !ok {
		return p, fmt.Errorf("--param %q: expected model::name=lo:hi[:flat|log]", s)
	}
	p.Model, p.Name, ok = strings.Cut(full, "::")
	if !ok || p.Model == "" || p.Name == "" {
		return p, fmt.Errorf("--param %q: parameter must be written model::name", s)
	}
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return p, fmt.Errorf("--param %q: expected lo:hi[:flat|log]", s)
	}
	var err error
	if p.Lo, err = strconv.ParseFloat(parts[0], 64); err != nil {
		return p, fmt.Errorf("--param %q: bad lower bound: %w", s, err)
	}
	if p.Hi, err = strconv.ParseFloat(parts[1], 64); err != nil {
		return p, fmt.Errorf("--param %q: bad upper bound: %w", s, err)
	}
	p.Prior = "flat"
	if len(parts) == 3 {
		p.Prior = parts[2]
	}
	if p.Prior != "flat" && p.Prior != "log" {
		return p, fmt.Errorf("--param %q: prior must be flat or log, got %q", s, p.Prior)
	}
	return p, nil
}
