package fcago

import "fmt"

// Concept is a formal concept: an extent and an intent with
// Up(Extent) == Intent and Down(Intent) == Extent.
//
// Concepts are produced by an enumerator and treated as immutable values.
type Concept struct {
	Extent ObjectSet
	Intent AttributeSet
}

// Area returns |Extent| * |Intent|, the number of relation cells the concept covers.
func (c Concept) Area() int {
	return c.Extent.Count() * c.Intent.Count()
}

// Equal reports whether both halves are equal.
func (c Concept) Equal(other Concept) bool {
	return c.Extent.Equal(other.Extent) && c.Intent.Equal(other.Intent)
}

// String renders the concept as "({o1, o2}, {a1})".
func (c Concept) String() string {
	return fmt.Sprintf("(%s, %s)", c.Extent, c.Intent)
}

// CompareConcepts orders concepts by intent bit pattern, then by extent bit
// pattern. It gives enumerator-independent ordering for concepts of one context.
func CompareConcepts(a, b Concept) int {
	if r := a.Intent.Compare(b.Intent); r != 0 {
		return r
	}
	return a.Extent.Compare(b.Extent)
}
