// Package dynval classifies dynamically typed values handed over by an
// embedding host (decoded documents, map[string]any trees, reflection-built
// values) into a small closed set of kinds. The rest of the module only
// switches over Kind and never inspects runtime types itself.
package dynval
