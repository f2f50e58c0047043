package grecon

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/fcago"
)

// Enumerator produces every formal concept of a context.
//
// Cover relies on completeness: with a partial concept set the factorization
// may stop before the relation is covered.
type Enumerator interface {
	Concepts(ctx context.Context, c *fcago.Context) ([]fcago.Concept, error)
}

// EnumeratorFunc adapts a function to the Enumerator interface.
type EnumeratorFunc func(ctx context.Context, c *fcago.Context) ([]fcago.Concept, error)

// Concepts calls f(ctx, c).
func (f EnumeratorFunc) Concepts(ctx context.Context, c *fcago.Context) ([]fcago.Concept, error) {
	return f(ctx, c)
}

// Step records one greedy selection.
type Step struct {
	// Concept is the selected factor.
	Concept fcago.Concept
	// Coverage is the number of previously uncovered cells it covered.
	Coverage int
	// Index is the position of the concept in the slice passed to Cover.
	Index int
}

// Result is the outcome of a cover factorization.
type Result struct {
	// Steps holds the selected factors in selection order.
	Steps []Step
	// Cells is the number of set cells of the relation.
	Cells int
	// Uncovered is the number of set cells no factor covers.
	Uncovered int
}

// Factors returns the selected concepts in selection order.
func (r *Result) Factors() []fcago.Concept {
	out := make([]fcago.Concept, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = s.Concept
	}
	return out
}

// Complete reports whether the factors cover every set cell.
func (r *Result) Complete() bool {
	return r.Uncovered == 0
}

// Verify returns an error matching ErrIncompleteConceptSet when cells remain uncovered.
func (r *Result) Verify() error {
	if r.Complete() {
		return nil
	}
	return fmt.Errorf("%w: %d of %d cells uncovered after %d factors",
		ErrIncompleteConceptSet, r.Uncovered, r.Cells, len(r.Steps))
}

// Cover greedily selects concepts whose rectangles cover the relation of c.
//
// concepts must be the complete set of formal concepts of c; it is not
// modified. Concepts with an empty extent or intent are never selected.
// Cancellation of ctx is observed between steps.
func Cover(ctx context.Context, c *fcago.Context, concepts []fcago.Concept, optFns ...func(*Options)) (*Result, error) {
	opts := applyOptions(optFns)
	start := time.Now()

	res, err := cover(ctx, c, concepts, opts)

	factors, uncovered := 0, 0
	if res != nil {
		factors, uncovered = len(res.Steps), res.Uncovered
	}
	opts.Metrics.RecordCover(factors, uncovered, time.Since(start), err)
	opts.Logger.LogCover(ctx, factors, uncovered, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func cover(ctx context.Context, c *fcago.Context, concepts []fcago.Concept, opts Options) (*Result, error) {
	objects, attributes := c.Shape()
	if uint64(objects)*uint64(attributes) > math.MaxUint32+1 {
		return nil, fmt.Errorf("%s: %w", c, ErrContextTooLarge)
	}

	p, err := newPool(concepts, objects, attributes, opts.Order)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger.WithContextName(c.Name()).WithShape(objects, attributes)
	uncovered := relation(c)
	res := &Result{Cells: int(uncovered.GetCardinality())}

	for !uncovered.IsEmpty() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("grecon: cover interrupted after %d factors: %w", len(res.Steps), err)
		}

		best, err := p.scanParallel(ctx, uncovered, opts.Parallelism)
		if err != nil {
			return nil, err
		}
		if best.pos < 0 {
			break
		}

		cand := p.items[best.pos]
		uncovered.AndNot(cand.rect)
		res.Steps = append(res.Steps, Step{
			Concept:  cand.concept,
			Coverage: best.count,
			Index:    cand.index,
		})
		logger.LogCoverStep(ctx, len(res.Steps), cand.index, best.count, int(uncovered.GetCardinality()))
		p.remove(best.pos)
	}

	res.Uncovered = int(uncovered.GetCardinality())
	return res, nil
}

// Factorize enumerates the concepts of c with e and covers c with them.
func Factorize(ctx context.Context, c *fcago.Context, e Enumerator, optFns ...func(*Options)) (*Result, error) {
	opts := applyOptions(optFns)

	start := time.Now()
	concepts, err := e.Concepts(ctx, c)
	opts.Metrics.RecordEnumerate(len(concepts), time.Since(start), err)
	opts.Logger.LogEnumerate(ctx, len(concepts), err)
	if err != nil {
		return nil, fmt.Errorf("grecon: enumerate concepts of %s: %w", c, err)
	}

	return Cover(ctx, c, concepts, optFns...)
}
