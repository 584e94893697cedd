package bst

// Stats describes the shape of the tree. It is a diagnostic side channel,
// not part of the storage contract; tests use it to observe degradation and
// key-collision behavior.
type Stats struct {
	// Nodes is the number of tree nodes (distinct keys).
	Nodes int
	// Height is the longest root-to-leaf path, 0 for an empty tree.
	Height int
	// MaxBucket is the largest collision bucket.
	MaxBucket int
	// Collisions is the number of entries sharing a key with an earlier
	// entry, i.e. size minus distinct keys.
	Collisions int
}

// Stats computes tree-shape statistics by full traversal.
func (t *Tree) Stats() Stats {
	s := Stats{
		Nodes:      t.nodes,
		Collisions: t.size - t.nodes,
	}
	var walk func(n *node) int
	walk = func(n *node) int {
		if n == nil {
			return 0
		}
		if len(n.bucket) > s.MaxBucket {
			s.MaxBucket = len(n.bucket)
		}
		return 1 + max(walk(n.left), walk(n.right))
	}
	s.Height = walk(t.root)
	return s
}
