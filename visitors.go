package canopy

import (
	"fmt"
	"math/big"
	"slices"
	"sort"
)

// Execute evaluates the Boolean function rooted at root under assignment a,
// descending Then when a label is asserted and Else otherwise, and returns
// whether the walk lands on the true terminal. It returns
// ErrMissingAssignment if a decision node's label has no entry in a.
func Execute(root *Node, a Assignment) (bool, error) {
	n := root
	for !n.IsTerminal() {
		v, ok := a.Get(n.Label())
		if !ok {
			return false, fmt.Errorf("%w: label %q", ErrMissingAssignment, n.Label())
		}
		if v {
			n = n.Then()
		} else {
			n = n.Else()
		}
	}
	return n.Identity() == TrueID, nil
}

// Contain reports whether members (read as the family member {l : l ∈
// members}) is a member of the family of sets rooted at root. members need
// not be pre-sorted or deduplicated by the caller; see MembersFromSet for a
// convenience constructor from a label→bool set.
//
// The algorithm walks the diagram in label order, consuming members entries
// as it passes their label: at a node whose label equals the next unclaimed
// member, it must follow Then (member present) to stay on the membership
// path; if the node's label has passed a still-unclaimed member, the diagram
// skipped that member's variable, which zero-suppression means is absent from
// every set on this path, so the set is not contained; otherwise the node's
// label is not among the members and the walk follows Else without consuming
// anything.
func Contain(root *Node, members []string) bool {
	sorted := append([]string(nil), members...)
	sort.Strings(sorted)
	sorted = slices.Compact(sorted)

	n := root
	i := 0
	for !n.IsTerminal() {
		switch {
		case i < len(sorted) && sorted[i] == n.Label():
			i++
			n = n.Then()
		case i < len(sorted) && sorted[i] < n.Label():
			return false
		default:
			n = n.Else()
		}
	}
	return n.Identity() == TrueID && i == len(sorted)
}

// Count returns the number of root-to-true-terminal paths through root,
// memoized per node within this single call so the cost is O(|DAG|) rather
// than exponential in the number of variables. This is a path count, not a
// count of satisfying assignments over some external variable universe.
func Count(root *Node) *big.Int {
	memo := make(map[Identity]*big.Int)
	var rec func(n *Node) *big.Int
	rec = func(n *Node) *big.Int {
		if n.IsTerminal() {
			if n.Identity() == TrueID {
				return big.NewInt(1)
			}
			return big.NewInt(0)
		}
		if v, ok := memo[n.Identity()]; ok {
			return v
		}
		r := new(big.Int).Add(rec(n.Then()), rec(n.Else()))
		memo[n.Identity()] = r
		return r
	}
	return rec(root)
}

// IsWire reports whether n is exactly a single asserted variable: Then is the
// true terminal, Else is the false terminal.
func IsWire(n *Node) bool {
	return !n.IsTerminal() && n.Then().Identity() == TrueID && n.Else().Identity() == FalseID
}

// IsNegation reports whether n is exactly the negation of a single variable:
// Then is the false terminal, Else is the true terminal.
func IsNegation(n *Node) bool {
	return !n.IsTerminal() && n.Then().Identity() == FalseID && n.Else().Identity() == TrueID
}

// IsConjunction reports whether n is an AND-chain of asserted variables: a
// straight line of nodes whose Else always leads to false and whose Then
// chain ends at true.
func IsConjunction(n *Node) bool {
	for {
		if n.Else().Identity() != FalseID || n.Then().Identity() == FalseID {
			return false
		}
		if n.Then().Identity() == TrueID {
			return true
		}
		n = n.Then()
	}
}

// IsDisjunction reports whether n is an OR-chain of asserted variables: a
// straight line of nodes whose Then always leads to true and whose Else
// chain ends at false.
func IsDisjunction(n *Node) bool {
	for {
		if n.Then().Identity() != TrueID || n.Else().Identity() == TrueID {
			return false
		}
		if n.Else().Identity() == FalseID {
			return true
		}
		n = n.Else()
	}
}

// IsExclusiveDisjunction reports whether n is an XOR-chain of variables: at
// every node along the Then chain, the Then child must be the exact logical
// negation of the Else child.
func IsExclusiveDisjunction(n *Node) bool {
	if n.IsTerminal() {
		return false
	}
	for {
		then := n.Then()
		if !isNegationOf(then, n.Else()) {
			return false
		}
		if then.IsTerminal() {
			return true
		}
		n = then
	}
}

// isNegationOf reports whether a represents exactly ¬b. BDD negation is
// structure-preserving (it swaps the two terminals and touches nothing
// else, a direct consequence of the then==else reduction rule applying
// identically regardless of which terminal a chain of equal children points
// at), so this is a pure structural co-recursion, never consulting an
// engine or constructing a node.
func isNegationOf(a, b *Node) bool {
	if a.IsTerminal() || b.IsTerminal() {
		return a.IsTerminal() && b.IsTerminal() && a.Identity() != b.Identity()
	}
	if a.Label() != b.Label() {
		return false
	}
	return isNegationOf(a.Then(), b.Then()) && isNegationOf(a.Else(), b.Else())
}

// Evaluator is a named, swappable evaluation strategy over a diagram root,
// for callers who want to select or pass around a visitor without committing
// to a specific function signature.
type Evaluator interface {
	Evaluate(root *Node) (any, error)
}

// CountEvaluator evaluates Count.
type CountEvaluator struct{}

// Evaluate implements Evaluator.
func (CountEvaluator) Evaluate(root *Node) (any, error) { return Count(root), nil }

// ExecuteEvaluator evaluates Execute against a fixed Assignment.
type ExecuteEvaluator struct {
	Assignment Assignment
}

// Evaluate implements Evaluator.
func (e ExecuteEvaluator) Evaluate(root *Node) (any, error) {
	return Execute(root, e.Assignment)
}

// ContainEvaluator evaluates Contain against a fixed member list.
type ContainEvaluator struct {
	Members []string
}

// Evaluate implements Evaluator.
func (e ContainEvaluator) Evaluate(root *Node) (any, error) {
	return Contain(root, e.Members), nil
}

// Evaluate runs e against root, rejecting a nil root up front.
func Evaluate(root *Node, e Evaluator) (any, error) {
	if root == nil {
		return nil, ErrEmptyHandle
	}
	return e.Evaluate(root)
}
