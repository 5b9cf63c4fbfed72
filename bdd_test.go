package canopy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/canopy-dd/canopy"
)

func TestDeMorganConjunction(t *testing.T) {
	x := canopy.NewVar("x")
	y := canopy.NewVar("y")

	lhs := x.And(y).Not()
	rhs := x.Not().Or(y.Not())

	require.True(t, lhs.Equal(rhs), "¬(x∧y) must equal ¬x∨¬y")
}

func TestDeMorganDisjunction(t *testing.T) {
	x := canopy.NewVar("x")
	y := canopy.NewVar("y")

	lhs := x.Or(y).Not()
	rhs := x.Not().And(y.Not())

	require.True(t, lhs.Equal(rhs), "¬(x∨y) must equal ¬x∧¬y")
}

func TestXorViaItsDefinition(t *testing.T) {
	x := canopy.NewVar("x")
	y := canopy.NewVar("y")

	xor := x.Xor(y)
	byParts := x.And(y.Not()).Or(x.Not().And(y))

	require.True(t, xor.Equal(byParts))
}

func TestExecuteMapAssignment(t *testing.T) {
	x := canopy.NewVar("p")
	y := canopy.NewVar("q")
	f := x.And(y.Not())

	got, err := f.Execute(canopy.MapAssignment{"p": true, "q": false})
	require.NoError(t, err)
	require.True(t, got)

	got, err = f.Execute(canopy.MapAssignment{"p": true, "q": true})
	require.NoError(t, err)
	require.False(t, got)
}

func TestExecuteMissingAssignment(t *testing.T) {
	f := canopy.NewVar("r")
	_, err := f.Execute(canopy.MapAssignment{})
	require.ErrorIs(t, err, canopy.ErrMissingAssignment)
}

func TestStructuralRecognizers(t *testing.T) {
	x := canopy.NewVar("x")
	y := canopy.NewVar("y")

	require.True(t, x.IsWire())
	require.True(t, x.Not().IsNegation())
	require.True(t, x.And(y).IsConjunction())
	require.True(t, x.Or(y).IsDisjunction())
	require.True(t, x.Xor(y).IsExclusiveDisjunction())

	require.False(t, x.Or(y).IsConjunction())
	require.True(t, x.Or(y).Or(x).IsDisjunction())
}

func TestHashedSetOfDistinctExpressions(t *testing.T) {
	x := canopy.NewVar("x")
	y := canopy.NewVar("y")

	expressions := []canopy.BooleanFunction{
		x.And(y),
		y.And(x),                      // same function as above, different build order
		x.Or(y),
		y.Or(x),                       // same as above
		x.And(y).Not(),
		x.Not().Or(y.Not()),           // De Morgan, same as above
		x.Xor(y),
		x.And(y.Not()).Or(x.Not().And(y)), // same as above
	}

	seen := make(map[canopy.Identity]struct{})
	for _, e := range expressions {
		seen[e.Identity()] = struct{}{}
	}

	require.Len(t, seen, 4, "8 expressions collapsing to 4 distinct canonical functions")
}

func TestCountIsPathCountNotAssignmentCount(t *testing.T) {
	x := canopy.NewVar("x")
	// x itself: one path to true (via Then), one to false (via Else).
	require.Equal(t, int64(1), x.Count().Int64())

	// x ∨ u: u is tested first (it sorts before "x"); u=1 reaches true
	// directly, u=0 goes through x. Two paths, whereas three of the four
	// assignments over {u, x} satisfy f.
	f := x.Or(canopy.NewVar("unused-in-and-but-present-in-or"))
	require.Equal(t, int64(2), f.Count().Int64())
}

func TestEngineIsolation(t *testing.T) {
	e1 := canopy.NewBooleanEngine()
	e2 := canopy.NewBooleanEngine()

	a := e1.Var("x")
	b := e2.Var("x")

	// Both are BDDs for a single asserted variable, but built from two
	// independent universes: each still reports the terminal identities
	// FalseID/TrueID for its own Zero/One.
	require.True(t, e1.Zero().IsZero())
	require.True(t, e2.Zero().IsZero())
	require.True(t, a.IsWire())
	require.True(t, b.IsWire())
}
