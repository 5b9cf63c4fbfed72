package canopy

import (
	"sync"
	"weak"

	"go.uber.org/zap"
)

// changeKey memoizes a change/offset/onset call by the identity of its
// operand node and the label being toggled in or out.
type changeKey struct {
	id    Identity
	label string
}

// pairKey memoizes a union/intersection/difference/join/meet call by the
// identities of its two operands: in the order passed for union, intersection
// and difference, and in lessNode order for join and meet.
type pairKey struct {
	a, b Identity
}

// combinationEngine is the process-local universe a family of Combination
// handles is built over. Unlike the BDD engine it has one compute table per
// operation (change, offset and onset key on a node and a label; the
// set-algebra operations key on a pair of nodes). Every table stores only
// weak references.
type combinationEngine struct {
	mu sync.Mutex

	ids    *indexAllocator[uniqueKey]
	unique map[uniqueKey]weak.Pointer[Node]

	changeTable, offsetTable, onsetTable  map[changeKey]weak.Pointer[Node]
	unionTable, intersectionTable         map[pairKey]weak.Pointer[Node]
	differenceTable, joinTable, meetTable map[pairKey]weak.Pointer[Node]

	zero, one *Node

	log *zap.Logger
}

func newCombinationEngine(cfg *Config) *combinationEngine {
	e := &combinationEngine{
		ids:               newIndexAllocator[uniqueKey](2),
		unique:            make(map[uniqueKey]weak.Pointer[Node]),
		changeTable:       make(map[changeKey]weak.Pointer[Node]),
		offsetTable:       make(map[changeKey]weak.Pointer[Node]),
		onsetTable:        make(map[changeKey]weak.Pointer[Node]),
		unionTable:        make(map[pairKey]weak.Pointer[Node]),
		intersectionTable: make(map[pairKey]weak.Pointer[Node]),
		differenceTable:   make(map[pairKey]weak.Pointer[Node]),
		joinTable:         make(map[pairKey]weak.Pointer[Node]),
		meetTable:         make(map[pairKey]weak.Pointer[Node]),
		log:               cfg.Logger,
	}
	e.zero = &Node{id: FalseID}
	e.one = &Node{id: TrueID}
	e.log.Debug("combination engine initialized")
	return e
}

// getOrCreate applies the ZDD reduction rule (a node whose then-child is the
// empty-family terminal contributes no member and is elided in favor of its
// else-child) and otherwise returns the canonical node for (label, then,
// els), creating it on first sight.
func (e *combinationEngine) getOrCreate(label string, then, els *Node) *Node {
	if then.id == FalseID {
		return els
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

// newVar returns the family consisting of exactly the singleton set {label}.
func (e *combinationEngine) newVar(label string) *Node {
	return e.getOrCreate(label, e.one, e.zero)
}

func changeGet(tbl map[changeKey]weak.Pointer[Node], key changeKey) (*Node, bool) {
	wp, ok := tbl[key]
	if !ok {
		return nil, false
	}
	n := wp.Value()
	if n == nil {
		delete(tbl, key)
		return nil, false
	}
	return n, true
}

func pairGet(tbl map[pairKey]weak.Pointer[Node], key pairKey) (*Node, bool) {
	wp, ok := tbl[key]
	if !ok {
		return nil, false
	}
	n := wp.Value()
	if n == nil {
		delete(tbl, key)
		return nil, false
	}
	return n, true
}

// change toggles label's membership in every set of the family rooted at n:
// sets containing label lose it, sets without it gain it.
func (e *combinationEngine) change(n *Node, label string) *Node {
	key := changeKey{n.Identity(), label}

	e.mu.Lock()
	if r, ok := changeGet(e.changeTable, key); ok {
		e.mu.Unlock()
		return r
	}
	e.mu.Unlock()

	var r *Node
	switch {
	case n.IsTerminal():
		r = e.getOrCreate(label, n, e.zero)
	case n.label == label:
		r = e.getOrCreate(label, n.els, n.then)
	case n.label < label:
		r = e.getOrCreate(n.label, e.change(n.then, label), e.change(n.els, label))
	default: // n.label > label: label not in the remaining variable domain
		r = e.getOrCreate(label, n, e.zero)
	}

	e.mu.Lock()
	e.changeTable[key] = weak.Make(r)
	e.mu.Unlock()
	return r
}

// offset returns the members of n's family that do not contain label.
func (e *combinationEngine) offset(n *Node, label string) *Node {
	if n.IsTerminal() {
		return n
	}
	key := changeKey{n.Identity(), label}

	e.mu.Lock()
	if r, ok := changeGet(e.offsetTable, key); ok {
		e.mu.Unlock()
		return r
	}
	e.mu.Unlock()

	var r *Node
	switch {
	case n.label == label:
		r = n.els
	case n.label < label:
		r = e.getOrCreate(n.label, e.offset(n.then, label), e.offset(n.els, label))
	default:
		r = n
	}

	e.mu.Lock()
	e.offsetTable[key] = weak.Make(r)
	e.mu.Unlock()
	return r
}

// onset returns the members of n's family that contain label, with label
// itself removed from each (so onset's result never tests label again).
func (e *combinationEngine) onset(n *Node, label string) *Node {
	if n.IsTerminal() {
		return e.zero
	}
	key := changeKey{n.Identity(), label}

	e.mu.Lock()
	if r, ok := changeGet(e.onsetTable, key); ok {
		e.mu.Unlock()
		return r
	}
	e.mu.Unlock()

	var r *Node
	switch {
	case n.label == label:
		r = n.then
	case n.label < label:
		r = e.getOrCreate(n.label, e.onset(n.then, label), e.onset(n.els, label))
	default:
		r = e.zero
	}

	e.mu.Lock()
	e.onsetTable[key] = weak.Make(r)
	e.mu.Unlock()
	return r
}

// union returns the members that appear in p's family, q's family, or both.
func (e *combinationEngine) union(p, q *Node) *Node {
	if p.Identity() == FalseID {
		return q
	}
	if q.Identity() == FalseID {
		return p
	}
	if p.Identity() == q.Identity() {
		return p
	}

	key := pairKey{p.Identity(), q.Identity()}
	e.mu.Lock()
	if r, ok := pairGet(e.unionTable, key); ok {
		e.mu.Unlock()
		return r
	}
	e.mu.Unlock()

	var r *Node
	switch compareLabel(p, q) {
	case -1:
		r = e.getOrCreate(p.label, p.then, e.union(p.els, q))
	case 1:
		r = e.getOrCreate(q.label, q.then, e.union(p, q.els))
	default:
		r = e.getOrCreate(p.label, e.union(p.then, q.then), e.union(p.els, q.els))
	}

	e.mu.Lock()
	e.unionTable[key] = weak.Make(r)
	e.mu.Unlock()
	return r
}

// intersection returns the members common to both p's family and q's family.
func (e *combinationEngine) intersection(p, q *Node) *Node {
	if p.Identity() == FalseID || q.Identity() == FalseID {
		return e.zero
	}
	if p.Identity() == q.Identity() {
		return p
	}

	key := pairKey{p.Identity(), q.Identity()}
	e.mu.Lock()
	if r, ok := pairGet(e.intersectionTable, key); ok {
		e.mu.Unlock()
		return r
	}
	e.mu.Unlock()

	var r *Node
	switch compareLabel(p, q) {
	case -1:
		r = e.intersection(p.els, q)
	case 1:
		r = e.intersection(p, q.els)
	default:
		r = e.getOrCreate(p.label, e.intersection(p.then, q.then), e.intersection(p.els, q.els))
	}

	e.mu.Lock()
	e.intersectionTable[key] = weak.Make(r)
	e.mu.Unlock()
	return r
}

// difference returns the members of p's family that are not members of q's
// family. Not present in the reference material this engine is otherwise
// grounded on (see SPEC_FULL.md §0); derived symmetrically to union and
// intersection.
func (e *combinationEngine) difference(p, q *Node) *Node {
	if p.Identity() == FalseID {
		return e.zero
	}
	if q.Identity() == FalseID {
		return p
	}
	if p.Identity() == q.Identity() {
		return e.zero
	}

	key := pairKey{p.Identity(), q.Identity()}
	e.mu.Lock()
	if r, ok := pairGet(e.differenceTable, key); ok {
		e.mu.Unlock()
		return r
	}
	e.mu.Unlock()

	var r *Node
	switch compareLabel(p, q) {
	case -1:
		r = e.getOrCreate(p.label, p.then, e.difference(p.els, q))
	case 1:
		r = e.difference(p, q.els)
	default:
		r = e.getOrCreate(p.label, e.difference(p.then, q.then), e.difference(p.els, q.els))
	}

	e.mu.Lock()
	e.differenceTable[key] = weak.Make(r)
	e.mu.Unlock()
	return r
}

// join returns the family of all unions a ∪ b for a in p's family and b in
// q's family.
func (e *combinationEngine) join(p, q *Node) *Node {
	if p.Identity() == FalseID || q.Identity() == FalseID {
		return e.zero
	}
	if p.Identity() == TrueID {
		return q
	}
	if q.Identity() == TrueID {
		return p
	}

	lo, hi := p, q
	if lessNode(q, p) {
		lo, hi = q, p
	}
	key := pairKey{lo.Identity(), hi.Identity()}
	e.mu.Lock()
	if r, ok := pairGet(e.joinTable, key); ok {
		e.mu.Unlock()
		return r
	}
	e.mu.Unlock()

	var r *Node
	switch compareLabel(lo, hi) {
	case 0:
		then := e.union(e.union(e.join(lo.then, hi.then), e.join(lo.then, hi.els)), e.join(lo.els, hi.then))
		els := e.join(lo.els, hi.els)
		r = e.getOrCreate(lo.label, then, els)
	default: // lo.label < hi.label, since lo was chosen as the smaller
		r = e.getOrCreate(lo.label, e.join(lo.then, hi), e.join(lo.els, hi))
	}

	e.mu.Lock()
	e.joinTable[key] = weak.Make(r)
	e.mu.Unlock()
	return r
}

// meet returns the family of all intersections a ∩ b for a in p's family and
// b in q's family.
func (e *combinationEngine) meet(p, q *Node) *Node {
	if p.Identity() == FalseID || q.Identity() == FalseID {
		return e.zero
	}
	if p.Identity() == TrueID || q.Identity() == TrueID {
		// The only member of the unit family is ∅, and ∅ ∩ m = ∅ for any m,
		// so as long as neither side is empty the result is always {∅}.
		return e.one
	}

	lo, hi := p, q
	if lessNode(q, p) {
		lo, hi = q, p
	}
	key := pairKey{lo.Identity(), hi.Identity()}
	e.mu.Lock()
	if r, ok := pairGet(e.meetTable, key); ok {
		e.mu.Unlock()
		return r
	}
	e.mu.Unlock()

	var r *Node
	switch compareLabel(lo, hi) {
	case 0:
		then := e.meet(lo.then, hi.then)
		els := e.union(e.union(e.meet(lo.then, hi.els), e.meet(lo.els, hi.then)), e.meet(lo.els, hi.els))
		r = e.getOrCreate(lo.label, then, els)
	default:
		// hi's family never carries lo.label at all, so every member drawn
		// from lo's then-branch loses that label on intersection too: both
		// branches of lo feed the label-free result.
		r = e.union(e.meet(lo.then, hi), e.meet(lo.els, hi))
	}

	e.mu.Lock()
	e.meetTable[key] = weak.Make(r)
	e.mu.Unlock()
	return r
}
