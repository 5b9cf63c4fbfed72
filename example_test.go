package canopy_test

import (
	"fmt"

	"github.com/canopy-dd/canopy"
)

// ExampleNewVar demonstrates building and evaluating a small Boolean function.
func ExampleNewVar() {
	p := canopy.NewVar("p")
	q := canopy.NewVar("q")

	f := p.And(q.Not())

	got, err := f.Execute(canopy.MapAssignment{"p": true, "q": false})
	if err != nil {
		panic(err)
	}

	fmt.Println(got)

	// Output:
	// true
}

// ExampleBooleanFunction_Equal demonstrates that two Boolean functions built
// in different orders, but denoting the same function, compare equal.
func ExampleBooleanFunction_Equal() {
	x := canopy.NewVar("x")
	y := canopy.NewVar("y")

	lhs := x.And(y).Not()
	rhs := x.Not().Or(y.Not())

	fmt.Println(lhs.Equal(rhs))

	// Output:
	// true
}

// ExampleZVar demonstrates building a family of sets from singletons.
func ExampleZVar() {
	a := canopy.ZVar("a")
	b := canopy.ZVar("b")

	family := a.Union(b).Union(a.Join(b))

	fmt.Println(family.Contain("a"))
	fmt.Println(family.Contain("a", "b"))
	fmt.Println(family.Count())

	// Output:
	// true
	// true
	// 3
}

// ExampleCombination_Change demonstrates toggling a label's membership across
// an entire family of sets.
func ExampleCombination_Change() {
	family := canopy.Unit().Changed("x")

	fmt.Println(family.Contain("x"))

	family.Change("x")
	fmt.Println(family.Contain())

	// Output:
	// true
	// true
}
