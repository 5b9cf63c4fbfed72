package canopy

import (
	"math/big"
	"sync"
)

// BooleanEngine is an isolated universe of BooleanFunction values: its own
// unique table, its own compute table, its own terminals. Most callers never
// need one explicitly (the package-level Zero/One/NewVar functions share a
// single lazily-initialized default engine), but an explicit BooleanEngine is
// available for callers who want independent universes. A BooleanFunction
// always remembers which BooleanEngine built it; mixing handles from two
// different engines in one operation is a misuse this package does not
// attempt to detect.
type BooleanEngine struct {
	eng    *booleanEngine
	counts *countCache
}

// NewBooleanEngine constructs an isolated BDD universe.
func NewBooleanEngine(opts ...Option) *BooleanEngine {
	cfg := newConfig(opts...)
	return &BooleanEngine{
		eng:    newBooleanEngine(cfg),
		counts: newCountCache(cfg.ComputeCacheSize),
	}
}

// Zero returns the constant-false BDD.
func (e *BooleanEngine) Zero() BooleanFunction { return BooleanFunction{root: e.eng.zero, eng: e} }

// One returns the constant-true BDD.
func (e *BooleanEngine) One() BooleanFunction { return BooleanFunction{root: e.eng.one, eng: e} }

// Var returns the BDD for a single asserted variable.
func (e *BooleanEngine) Var(label string) BooleanFunction {
	return BooleanFunction{root: e.eng.newVar(label), eng: e}
}

// CachedCount behaves like f.Count(), but memoizes per-node results in a
// bounded cache shared across calls on this engine (see cache.go). Safe
// because a node's path count never changes once computed: identities are
// permanent.
func (e *BooleanEngine) CachedCount(f BooleanFunction) *big.Int {
	return cachedCount(e.counts, f.requireRoot())
}

var (
	defaultBooleanOnce sync.Once
	defaultBoolean     *BooleanEngine
)

func booleanSingleton() *BooleanEngine {
	defaultBooleanOnce.Do(func() {
		defaultBoolean = NewBooleanEngine()
	})
	return defaultBoolean
}

// Zero returns the constant-false BDD of the default, process-wide BDD engine.
func Zero() BooleanFunction { return booleanSingleton().Zero() }

// One returns the constant-true BDD of the default, process-wide BDD engine.
func One() BooleanFunction { return booleanSingleton().One() }

// NewVar returns the BDD for a single asserted variable, from the default,
// process-wide BDD engine.
func NewVar(label string) BooleanFunction { return booleanSingleton().Var(label) }

// BooleanFunction is a value handle onto a BDD node. Its zero value is empty:
// every method below panics with ErrEmptyHandle if called on it. Two handles
// compare equal with Equal, or hash equal with Hash, exactly when they denote
// the same Boolean function: by canonicity, exactly when their
// root identities match. Pointer identity of the underlying *Node is
// deliberately never consulted: a node reclaimed by the garbage collector and
// later recreated gets a new address but the same identity.
type BooleanFunction struct {
	root *Node
	eng  *BooleanEngine
}

func (f BooleanFunction) requireRoot() *Node {
	if f.root == nil {
		panic(ErrEmptyHandle)
	}
	return f.root
}

func (f BooleanFunction) requireEngine() *booleanEngine {
	if f.eng == nil {
		panic(ErrEmptyHandle)
	}
	return f.eng.eng
}

// Identity returns f's canonical, permanent identity.
func (f BooleanFunction) Identity() Identity { return f.requireRoot().Identity() }

// Hash returns a hash consistent with Equal: two equal handles always hash
// equal. Because identities are already a perfect, collision-free key, this
// is simply the identity itself, widened to uint64.
func (f BooleanFunction) Hash() uint64 { return uint64(f.requireRoot().Identity()) }

// Equal reports whether f and g denote the same Boolean function.
func (f BooleanFunction) Equal(g BooleanFunction) bool {
	return f.requireRoot().Identity() == g.requireRoot().Identity()
}

// IsZero reports whether f is the constant-false function.
func (f BooleanFunction) IsZero() bool { return f.requireRoot().Identity() == FalseID }

// IsOne reports whether f is the constant-true function.
func (f BooleanFunction) IsOne() bool { return f.requireRoot().Identity() == TrueID }

// Not returns ¬f.
func (f BooleanFunction) Not() BooleanFunction {
	e := f.requireEngine()
	return BooleanFunction{root: e.not(f.requireRoot()), eng: f.eng}
}

// And returns f ∧ g.
func (f BooleanFunction) And(g BooleanFunction) BooleanFunction {
	e := f.requireEngine()
	return BooleanFunction{root: e.and(f.requireRoot(), g.requireRoot()), eng: f.eng}
}

// Or returns f ∨ g.
func (f BooleanFunction) Or(g BooleanFunction) BooleanFunction {
	e := f.requireEngine()
	return BooleanFunction{root: e.or(f.requireRoot(), g.requireRoot()), eng: f.eng}
}

// Xor returns f ⊕ g.
func (f BooleanFunction) Xor(g BooleanFunction) BooleanFunction {
	e := f.requireEngine()
	return BooleanFunction{root: e.xor(f.requireRoot(), g.requireRoot()), eng: f.eng}
}

// AndAssign sets f to f ∧ g.
func (f *BooleanFunction) AndAssign(g BooleanFunction) { *f = f.And(g) }

// OrAssign sets f to f ∨ g.
func (f *BooleanFunction) OrAssign(g BooleanFunction) { *f = f.Or(g) }

// XorAssign sets f to f ⊕ g.
func (f *BooleanFunction) XorAssign(g BooleanFunction) { *f = f.Xor(g) }

// Execute evaluates f under the given assignment. See Assignment.
func (f BooleanFunction) Execute(a Assignment) (bool, error) {
	return Execute(f.requireRoot(), a)
}

// Count returns the number of root-to-true-terminal paths through f. This is
// a path count, not a count of satisfying assignments over some external
// variable universe: a variable f never tests contributes no extra paths.
func (f BooleanFunction) Count() *big.Int { return Count(f.requireRoot()) }

// IsWire reports whether f is exactly a single asserted variable (then ==
// true, else == false).
func (f BooleanFunction) IsWire() bool { return IsWire(f.requireRoot()) }

// IsNegation reports whether f is exactly the negation of a single variable
// (then == false, else == true).
func (f BooleanFunction) IsNegation() bool { return IsNegation(f.requireRoot()) }

// IsConjunction reports whether f is an AND-chain of asserted variables.
func (f BooleanFunction) IsConjunction() bool { return IsConjunction(f.requireRoot()) }

// IsDisjunction reports whether f is an OR-chain of asserted variables.
func (f BooleanFunction) IsDisjunction() bool { return IsDisjunction(f.requireRoot()) }

// IsExclusiveDisjunction reports whether f is an XOR-chain of variables.
func (f BooleanFunction) IsExclusiveDisjunction() bool {
	return IsExclusiveDisjunction(f.requireRoot())
}
