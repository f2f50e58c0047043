package enumerate

import (
	"context"
	"fmt"

	"github.com/hupe1980/fcago"
)

// NextClosure enumerates formal concepts in lectic order of their intents.
type NextClosure struct {
	// Limit stops enumeration after that many concepts. Zero means no limit.
	Limit int
}

// Concepts returns every formal concept of c, or the first Limit of them.
// ctx is checked once per concept.
func (n NextClosure) Concepts(ctx context.Context, c *fcago.Context) ([]fcago.Concept, error) {
	var out []fcago.Concept
	intent := c.AttributeClosure(c.Attributes().Empty())
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("enumerate: interrupted after %d concepts: %w", len(out), err)
		}
		out = append(out, fcago.Concept{Extent: c.Down(intent), Intent: intent})
		if n.Limit > 0 && len(out) >= n.Limit {
			return out, nil
		}

		next, ok := nextIntent(c, intent)
		if !ok {
			return out, nil
		}
		intent = next
	}
}

// nextIntent returns the lectically next closed attribute set after intent.
func nextIntent(c *fcago.Context, intent fcago.AttributeSet) (fcago.AttributeSet, bool) {
	for i := intent.Len() - 1; i >= 0; i-- {
		if intent.Test(i) {
			continue
		}
		prefix := intent.Prefix(i)
		candidate := c.AttributeClosure(prefix.With(i))
		// Canonicity: the closure must not add an attribute below i.
		if candidate.Prefix(i).Equal(prefix) {
			return candidate, true
		}
	}
	return fcago.AttributeSet{}, false
}
