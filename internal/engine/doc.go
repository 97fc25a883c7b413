// Package engine is the boundary between a scan and the engine that runs
// it, plus Sampler, a built-in engine that walks a plugin's proposals
// through the configured priors and scores them with the objective.
//
// External consumers should use the stable facade in pkg/core.
package engine
