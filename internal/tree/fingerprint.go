package tree

import (
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"
)

// Fingerprint is a short stable hash of the rendered tree, used to name
// runs and detect identical settings.
func (n *Node) Fingerprint() string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(n.String()))
}
