package canopy

import (
	"sort"
	"strconv"

	"github.com/willf/bitset"
	"golang.org/x/exp/maps"
)

// Assignment supplies variable values to Execute. Get reports the value bound
// to label and whether label is bound at all; Execute treats an unbound
// label reached during evaluation as ErrMissingAssignment.
type Assignment interface {
	Get(label string) (value bool, ok bool)
}

// MapAssignment is an Assignment backed by a plain map, the natural choice
// when only some variables of the diagram are known to be bound.
type MapAssignment map[string]bool

// Get implements Assignment.
func (a MapAssignment) Get(label string) (bool, bool) {
	v, ok := a[label]
	return v, ok
}

// BitAssignment is a complete, indexable Assignment backed by a bitset, for
// diagrams whose labels are decimal-encoded variable indices ("0", "1", ...).
// Being complete by contract, Get always reports ok == true for any
// well-formed decimal label: an index past the bitset's length is simply
// unset (false), never missing.
type BitAssignment struct {
	bits *bitset.BitSet
}

// NewBitAssignment wraps an existing bitset as an Assignment.
func NewBitAssignment(bits *bitset.BitSet) BitAssignment {
	return BitAssignment{bits: bits}
}

// Get implements Assignment. A label that is not a non-negative decimal
// integer reports ok == false; BitAssignment is otherwise total.
func (a BitAssignment) Get(label string) (bool, bool) {
	idx, err := strconv.ParseUint(label, 10, 64)
	if err != nil {
		return false, false
	}
	return a.bits.Test(uint(idx)), true
}

// MembersFromSet turns a set of labels known to hold true into a sorted
// member slice for Contain. Labels mapped to false, or absent altogether, are
// dropped: under zero-suppression a false entry carries no information that
// its absence from the slice does not already convey.
func MembersFromSet(set map[string]bool) []string {
	members := make([]string, 0, len(set))
	for _, label := range maps.Keys(set) {
		if set[label] {
			members = append(members, label)
		}
	}
	sort.Strings(members)
	return members
}
