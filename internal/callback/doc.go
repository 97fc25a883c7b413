// Package callback adapts a dynamically typed scoring callable supplied by
// an embedding host to the fixed numeric signature scan engines call:
// parameters in, one float64 out.
//
// An Adapter holds exactly one registered callable. Registering again
// replaces it; a trampoline call uses the callable that was registered
// when the call started. Calls into the host are serialized unless the
// host declares itself reentrant.
package callback
