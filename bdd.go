package canopy

import (
	"sync"
	"weak"

	"go.uber.org/zap"
)

// computeKey3 memoizes a single ite(F,G,H) call by the identities of its
// three operands.
type computeKey3 struct {
	f, g, h Identity
}

// booleanEngine is the process-local universe a family of BooleanFunction
// handles is built over: one unique table (hash-consing, C3) and one compute
// table (ite memoization, C4), both storing only weak references so neither
// table can keep a node alive past its last real owner.
//
// Every method that touches unique or compute serializes behind mu: a single
// coarse mutex for the whole engine, guarding both tables and the allocator.
type booleanEngine struct {
	mu sync.Mutex

	ids    *indexAllocator[uniqueKey]
	unique map[uniqueKey]weak.Pointer[Node]

	compute map[computeKey3]weak.Pointer[Node]

	zero, one *Node

	log *zap.Logger
}

func newBooleanEngine(cfg *Config) *booleanEngine {
	e := &booleanEngine{
		ids:     newIndexAllocator[uniqueKey](2),
		unique:  make(map[uniqueKey]weak.Pointer[Node]),
		compute: make(map[computeKey3]weak.Pointer[Node]),
		log:     cfg.Logger,
	}
	e.zero = &Node{id: FalseID}
	e.one = &Node{id: TrueID}
	e.log.Debug("boolean engine initialized")
	return e
}

// getOrCreate applies the BDD reduction rule (a node whose two children are
// identical is redundant and is replaced by that child) and otherwise returns
// the canonical node for (label, then, els), creating it on first sight.
func (e *booleanEngine) getOrCreate(label string, then, els *Node) *Node {
	if then.id == els.id {
		return then
	}

	key := uniqueKey{label: label, then: then.id, els: els.id}

	e.mu.Lock()
	defer e.mu.Unlock()

	if wp, ok := e.unique[key]; ok {
		if n := wp.Value(); n != nil {
			return n
		}
		e.log.Debug("unique table entry expired", zap.String("label", label))
	}

	id := e.ids.allocate(key)
	n := &Node{id: id, label: label, then: then, els: els}
	e.unique[key] = weak.Make(n)
	return n
}

// newVar returns the BDD for a single asserted variable: true when label
// holds, false otherwise.
func (e *booleanEngine) newVar(label string) *Node {
	return e.getOrCreate(label, e.one, e.zero)
}

func (e *booleanEngine) computeGet(key computeKey3) (*Node, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	wp, ok := e.compute[key]
	if !ok {
		return nil, false
	}
	n := wp.Value()
	if n == nil {
		delete(e.compute, key)
		e.log.Debug("ite compute-table entry expired")
		return nil, false
	}
	return n, true
}

func (e *booleanEngine) computePut(key computeKey3, n *Node) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.compute[key] = weak.Make(n)
}

// ite is the universal BDD primitive: if F then G else H, by Shannon
// decomposition on the smallest label among F, G, H.
func (e *booleanEngine) ite(f, g, h *Node) *Node {
	if f.IsTerminal() {
		if f.id == TrueID {
			return g
		}
		return h
	}
	if g.id == h.id {
		return g
	}

	key := computeKey3{f.id, g.id, h.id}
	if n, ok := e.computeGet(key); ok {
		return n
	}

	v := minLabel(f, g, h)
	fThen, fElse := cofactorThen(f, v), cofactorElse(f, v)
	gThen, gElse := cofactorThen(g, v), cofactorElse(g, v)
	hThen, hElse := cofactorThen(h, v), cofactorElse(h, v)

	then := e.ite(fThen, gThen, hThen)
	els := e.ite(fElse, gElse, hElse)

	var r *Node
	if then.id == els.id {
		r = then
	} else {
		r = e.getOrCreate(v, then, els)
	}

	e.computePut(key, r)
	return r
}

func (e *booleanEngine) not(a *Node) *Node       { return e.ite(a, e.zero, e.one) }
func (e *booleanEngine) and(a, b *Node) *Node    { return e.ite(a, b, e.zero) }
func (e *booleanEngine) or(a, b *Node) *Node     { return e.ite(a, e.one, b) }
func (e *booleanEngine) xor(a, b *Node) *Node    { return e.ite(a, e.not(b), b) }
