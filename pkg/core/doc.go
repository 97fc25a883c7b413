// Package core provides a small, stable facade over scanbit's internal
// packages for programs that embed a scan. It re-exports a narrow API
// surface so callers can depend on a stable import path.
//
// Example:
//
//	settings, _ := core.LoadSettings("scan.yaml")
//	res, err := core.RunScan(ctx, core.NewSampler(0), settings, loglike)
//	if err != nil { /* handle */ }
//	_ = core.MarshalResult(os.Stdout, res)
package core
