package canopy

import (
	"math/big"
	"sync"
)

// CombinationEngine is an isolated universe of Combination values, mirroring
// BooleanEngine for the ZDD side: its own unique table, its own per-operation
// compute tables, its own terminals (a BDD and a ZDD engine never share a
// unique table, even when both exist in the same process).
type CombinationEngine struct {
	eng    *combinationEngine
	counts *countCache
}

// NewCombinationEngine constructs an isolated ZDD universe.
func NewCombinationEngine(opts ...Option) *CombinationEngine {
	cfg := newConfig(opts...)
	return &CombinationEngine{
		eng:    newCombinationEngine(cfg),
		counts: newCountCache(cfg.ComputeCacheSize),
	}
}

// CachedCount behaves like c.Count(), but memoizes per-node results in a
// bounded cache shared across calls on this engine. See BooleanEngine.CachedCount.
func (e *CombinationEngine) CachedCount(c Combination) *big.Int {
	return cachedCount(e.counts, c.requireRoot())
}

// Empty returns the empty family (no members at all).
func (e *CombinationEngine) Empty() Combination { return Combination{root: e.eng.zero, eng: e} }

// Unit returns the family containing exactly the empty set.
func (e *CombinationEngine) Unit() Combination { return Combination{root: e.eng.one, eng: e} }

// Var returns the family containing exactly the singleton set {label}.
func (e *CombinationEngine) Var(label string) Combination {
	return Combination{root: e.eng.newVar(label), eng: e}
}

var (
	defaultCombinationOnce sync.Once
	defaultCombination     *CombinationEngine
)

func combinationSingleton() *CombinationEngine {
	defaultCombinationOnce.Do(func() {
		defaultCombination = NewCombinationEngine()
	})
	return defaultCombination
}

// Empty returns the empty family of the default, process-wide ZDD engine.
func Empty() Combination { return combinationSingleton().Empty() }

// Unit returns the family containing exactly the empty set, from the
// default, process-wide ZDD engine.
func Unit() Combination { return combinationSingleton().Unit() }

// ZVar returns the singleton family {label}, from the default, process-wide
// ZDD engine.
func ZVar(label string) Combination { return combinationSingleton().Var(label) }

// Combination is a value handle onto a ZDD node, representing a family of
// finite sets of labels. Its zero value is empty: every method below panics
// with ErrEmptyHandle if called on it. Equal and Hash compare by root
// identity, never by the underlying *Node's address: see BooleanFunction's
// doc comment for why that distinction matters.
type Combination struct {
	root *Node
	eng  *CombinationEngine
}

func (c Combination) requireRoot() *Node {
	if c.root == nil {
		panic(ErrEmptyHandle)
	}
	return c.root
}

func (c Combination) requireEngine() *combinationEngine {
	if c.eng == nil {
		panic(ErrEmptyHandle)
	}
	return c.eng.eng
}

// Identity returns c's canonical, permanent identity.
func (c Combination) Identity() Identity { return c.requireRoot().Identity() }

// Hash returns a hash consistent with Equal.
func (c Combination) Hash() uint64 { return uint64(c.requireRoot().Identity()) }

// Equal reports whether c and d denote the same family of sets.
func (c Combination) Equal(d Combination) bool {
	return c.requireRoot().Identity() == d.requireRoot().Identity()
}

// IsEmpty reports whether c is the empty family.
func (c Combination) IsEmpty() bool { return c.requireRoot().Identity() == FalseID }

// Union returns the family of members in c, in d, or both.
func (c Combination) Union(d Combination) Combination {
	e := c.requireEngine()
	return Combination{root: e.union(c.requireRoot(), d.requireRoot()), eng: c.eng}
}

// Difference returns the family of members in c but not in d. See
// SPEC_FULL.md §0 for why this operation has no analogue in the reference
// material the rest of this engine is grounded on.
func (c Combination) Difference(d Combination) Combination {
	e := c.requireEngine()
	return Combination{root: e.difference(c.requireRoot(), d.requireRoot()), eng: c.eng}
}

// Intersection returns the family of members common to both c and d.
func (c Combination) Intersection(d Combination) Combination {
	e := c.requireEngine()
	return Combination{root: e.intersection(c.requireRoot(), d.requireRoot()), eng: c.eng}
}

// Join returns the family of all unions a ∪ b for a in c, b in d.
func (c Combination) Join(d Combination) Combination {
	e := c.requireEngine()
	return Combination{root: e.join(c.requireRoot(), d.requireRoot()), eng: c.eng}
}

// Meet returns the family of all intersections a ∩ b for a in c, b in d.
func (c Combination) Meet(d Combination) Combination {
	e := c.requireEngine()
	return Combination{root: e.meet(c.requireRoot(), d.requireRoot()), eng: c.eng}
}

// UnionAssign sets c to c ∪ d.
func (c *Combination) UnionAssign(d Combination) { *c = c.Union(d) }

// DifferenceAssign sets c to c ∖ d.
func (c *Combination) DifferenceAssign(d Combination) { *c = c.Difference(d) }

// IntersectionAssign sets c to c ∩ d.
func (c *Combination) IntersectionAssign(d Combination) { *c = c.Intersection(d) }

// Change toggles label's membership in every set of c's family, in place,
// and returns the receiver for chaining.
func (c *Combination) Change(label string) *Combination {
	e := c.requireEngine()
	c.root = e.change(c.requireRoot(), label)
	return c
}

// Changed returns a new family with label's membership toggled in every set
// of c's family, leaving c unmodified.
func (c Combination) Changed(label string) Combination {
	e := c.requireEngine()
	return Combination{root: e.change(c.requireRoot(), label), eng: c.eng}
}

// Offset returns the members of c's family that do not contain label.
func (c Combination) Offset(label string) Combination {
	e := c.requireEngine()
	return Combination{root: e.offset(c.requireRoot(), label), eng: c.eng}
}

// Onset returns the members of c's family that contain label, with label
// removed from each member.
func (c Combination) Onset(label string) Combination {
	e := c.requireEngine()
	return Combination{root: e.onset(c.requireRoot(), label), eng: c.eng}
}

// Contain reports whether the set named by members belongs to c's family.
// See the package-level Contain function for the exact algorithm.
func (c Combination) Contain(members ...string) bool {
	return Contain(c.requireRoot(), members)
}

// ContainSet is Contain over the true-valued labels of set.
func (c Combination) ContainSet(set map[string]bool) bool {
	return c.Contain(MembersFromSet(set)...)
}

// Count returns the number of members of c's family.
func (c Combination) Count() *big.Int { return Count(c.requireRoot()) }
