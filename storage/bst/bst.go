// Package bst provides a storage engine backed by an unbalanced binary
// search tree over the derived key x² + y².
//
// The tree is intentionally left unbalanced: the engine exists to measure
// what an unbalanced structure costs under skewed key sequences, so no
// rebalancing is performed and depth can degrade to O(n). Because the key is
// not injective, every node carries a collision bucket of entries sharing
// its key, disambiguated by exact coordinate match.
//
// The one query the key ordering accelerates is the origin-centered radius
// query: an in-order traversal can cut off the entire right subtree at the
// first node whose key reaches radius². Neither the region query nor the
// centered radius query is monotonic in the key, so both fall back to a
// full traversal.
package bst

import (
	"slices"

	"github.com/vmikhailov/spatialstore/storage"
)

var _ storage.Storage = (*Tree)(nil)

func init() {
	storage.Register(storage.KindBST, func(opts ...storage.Option) storage.Storage {
		return New(opts...)
	})
}

type node struct {
	key    int64
	bucket []storage.Entry // entries sharing key, in insertion order
	left   *node
	right  *node
}

// Tree is the unbalanced-BST engine.
type Tree struct {
	opts  storage.Options
	root  *node
	size  int
	nodes int
}

// New creates an empty Tree.
func New(opts ...storage.Option) *Tree {
	return &Tree{opts: storage.ApplyOptions(opts...)}
}

// Kind identifies the engine.
func (t *Tree) Kind() storage.Kind { return storage.KindBST }

func (t *Tree) find(key int64) *node {
	n := t.root
	for n != nil {
		switch {
		case key < n.key:
			n = n.left
		case key > n.key:
			n = n.right
		default:
			return n
		}
	}
	return nil
}

// Add inserts or updates the entry, reporting true when the coordinate pair
// is new.
func (t *Tree) Add(e storage.Entry) (bool, error) {
	if err := t.opts.CheckPoint(e.X, e.Y); err != nil {
		return false, err
	}

	key := e.Key()
	if t.root == nil {
		t.root = &node{key: key, bucket: []storage.Entry{e}}
		t.nodes++
		t.size++
		return true, nil
	}

	n := t.root
	for {
		switch {
		case key < n.key:
			if n.left == nil {
				n.left = &node{key: key, bucket: []storage.Entry{e}}
				t.nodes++
				t.size++
				return true, nil
			}
			n = n.left
		case key > n.key:
			if n.right == nil {
				n.right = &node{key: key, bucket: []storage.Entry{e}}
				t.nodes++
				t.size++
				return true, nil
			}
			n = n.right
		default:
			for i, stored := range n.bucket {
				if stored.X == e.X && stored.Y == e.Y {
					n.bucket[i] = e
					return false, nil
				}
			}
			n.bucket = append(n.bucket, e)
			t.size++
			return true, nil
		}
	}
}

// Get returns the entry at (x, y) or storage.ErrNotFound.
func (t *Tree) Get(x, y int) (storage.Entry, error) {
	if err := t.opts.CheckPoint(x, y); err != nil {
		return storage.Entry{}, err
	}
	if e, ok := t.lookup(x, y); ok {
		return e, nil
	}
	return storage.Entry{}, storage.ErrNotFound
}

// TryGet is the non-erroring form of Get.
func (t *Tree) TryGet(x, y int) (storage.Entry, bool) {
	return t.lookup(x, y)
}

func (t *Tree) lookup(x, y int) (storage.Entry, bool) {
	n := t.find(storage.Key(x, y))
	if n == nil {
		return storage.Entry{}, false
	}
	for _, stored := range n.bucket {
		if stored.X == x && stored.Y == y {
			return stored, true
		}
	}
	return storage.Entry{}, false
}

// Remove deletes the entry at (x, y), reporting whether one existed. When a
// node's bucket empties, the node is excised with the standard BST deletion:
// zero- and one-child nodes are spliced out, two-child nodes are replaced by
// their in-order successor (the minimum of the right subtree).
func (t *Tree) Remove(x, y int) (bool, error) {
	if err := t.opts.CheckPoint(x, y); err != nil {
		return false, err
	}

	key := storage.Key(x, y)
	n := t.find(key)
	if n == nil {
		return false, nil
	}

	idx := -1
	for i, stored := range n.bucket {
		if stored.X == x && stored.Y == y {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	n.bucket = slices.Delete(n.bucket, idx, idx+1)
	t.size--
	if len(n.bucket) == 0 {
		t.root = deleteNode(t.root, key)
		t.nodes--
	}
	return true, nil
}

func deleteNode(n *node, key int64) *node {
	if n == nil {
		return nil
	}
	switch {
	case key < n.key:
		n.left = deleteNode(n.left, key)
	case key > n.key:
		n.right = deleteNode(n.right, key)
	default:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		// Two children: adopt the in-order successor (minimum of the right
		// subtree), then delete its old node. The successor has no left
		// child, so the recursive delete bottoms out in a splice.
		succ := n.right
		for succ.left != nil {
			succ = succ.left
		}
		n.key = succ.key
		n.bucket = succ.bucket
		n.right = deleteNode(n.right, succ.key)
	}
	return n
}

// Contains reports whether an entry is stored at (x, y).
func (t *Tree) Contains(x, y int) (bool, error) {
	if err := t.opts.CheckPoint(x, y); err != nil {
		return false, err
	}
	_, ok := t.lookup(x, y)
	return ok, nil
}

// ListAll returns every entry in ascending key order, buckets flattened in
// insertion order.
func (t *Tree) ListAll() []storage.Entry {
	out := make([]storage.Entry, 0, t.size)
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, n.bucket...)
		walk(n.right)
	}
	walk(t.root)
	return out
}

// InRegion traverses the whole tree filtering by the inclusive rectangle.
// The rectangle predicate is not monotonic in the key, so no subtree can be
// pruned.
func (t *Tree) InRegion(minX, minY, maxX, maxY int) ([]storage.Entry, error) {
	if err := t.opts.CheckRegion(minX, minY, maxX, maxY); err != nil {
		return nil, err
	}
	var out []storage.Entry
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		walk(n.left)
		for _, e := range n.bucket {
			if storage.InRegion(e.X, e.Y, minX, minY, maxX, maxY) {
				out = append(out, e)
			}
		}
		walk(n.right)
	}
	walk(t.root)
	return out, nil
}

// WithinRadius answers the origin radius query with key-order pruning: the
// left subtree is always visited, the node's own bucket is emitted when its
// key is below radius², and the right subtree is visited only in that case.
// Every key there is at least the node's key, so one failed test excludes
// the whole subtree.
func (t *Tree) WithinRadius(radius int) ([]storage.Entry, error) {
	if err := t.opts.CheckRadius(radius); err != nil {
		return nil, err
	}
	limit := int64(radius) * int64(radius)
	var out []storage.Entry
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		walk(n.left)
		if n.key < limit {
			out = append(out, n.bucket...)
			walk(n.right)
		}
	}
	walk(t.root)
	return out, nil
}

// WithinRadiusOf traverses the whole tree filtering by the inclusive
// centered circle. The centered distance is not monotonic in the key, so the
// origin-query pruning does not apply.
func (t *Tree) WithinRadiusOf(centerX, centerY, radius int) ([]storage.Entry, error) {
	if err := t.opts.CheckCoordinate("centerX", centerX); err != nil {
		return nil, err
	}
	if err := t.opts.CheckCoordinate("centerY", centerY); err != nil {
		return nil, err
	}
	if err := t.opts.CheckRadius(radius); err != nil {
		return nil, err
	}
	var out []storage.Entry
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		walk(n.left)
		for _, e := range n.bucket {
			if storage.WithinCenter(e.X, e.Y, centerX, centerY, radius) {
				out = append(out, e)
			}
		}
		walk(n.right)
	}
	walk(t.root)
	return out, nil
}

// Clear removes every entry.
func (t *Tree) Clear() {
	t.root = nil
	t.size = 0
	t.nodes = 0
}

// Count returns the number of stored entries.
func (t *Tree) Count() int { return t.size }
