package canopy

import (
	"math/big"

	lru "github.com/hashicorp/golang-lru/v2"
)

// countCache is a bounded, cross-call cache of Count results keyed by node
// Identity. Unlike the unique and compute tables, it is safe to back with an
// ordinary (strong-reference, eviction-by-policy) LRU rather than a weak
// reference: a cached count never pins the node it was computed from, since
// the key is a bare Identity, not a *Node. An evicted entry is simply
// recomputed on next use.
type countCache struct {
	cache *lru.Cache[Identity, *big.Int]
}

func newCountCache(size int) *countCache {
	if size <= 0 {
		panic(ErrCacheSize)
	}
	c, err := lru.New[Identity, *big.Int](size)
	if err != nil {
		panic(err)
	}
	return &countCache{cache: c}
}

// cachedCount computes root's path count exactly like Count, but consults and
// populates c for every node visited, not just the root, so overlapping
// queries against the same engine amortize across calls.
func cachedCount(c *countCache, root *Node) *big.Int {
	var rec func(n *Node) *big.Int
	rec = func(n *Node) *big.Int {
		if n.IsTerminal() {
			if n.Identity() == TrueID {
				return big.NewInt(1)
			}
			return big.NewInt(0)
		}
		if v, ok := c.cache.Get(n.Identity()); ok {
			return v
		}
		r := new(big.Int).Add(rec(n.Then()), rec(n.Else()))
		c.cache.Add(n.Identity(), r)
		return r
	}
	return rec(root)
}
