package grecon

import (
	"context"
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/fcago"
	"golang.org/x/sync/errgroup"
)

// candidate is one arena slot of the pool.
type candidate struct {
	concept fcago.Concept
	rect    *roaring.Bitmap // nil when extent or intent is empty
	index   int             // position in the caller's slice
	live    bool
}

// pool is an arena of candidates. Removal clears the live flag; the arena is
// compacted in order once more than half of it is dead, so the relative order
// of live candidates never changes.
type pool struct {
	items []candidate
	live  int
}

// selection is the best candidate of a scan. pos is -1 when nothing covers
// any uncovered cell.
type selection struct {
	pos   int
	count int
}

func newPool(concepts []fcago.Concept, objects, attributes int, order Order) (*pool, error) {
	p := &pool{
		items: make([]candidate, len(concepts)),
		live:  len(concepts),
	}
	for i, concept := range concepts {
		if concept.Extent.Len() != objects || concept.Intent.Len() != attributes {
			return nil, fmt.Errorf("concept %d is %dx%d, context is %dx%d: %w",
				i, concept.Extent.Len(), concept.Intent.Len(), objects, attributes, fcago.ErrDimensionMismatch)
		}
		p.items[i] = candidate{
			concept: concept,
			rect:    rectangle(concept, attributes),
			index:   i,
			live:    true,
		}
	}
	if order == CanonicalOrder {
		slices.SortStableFunc(p.items, func(a, b candidate) int {
			return fcago.CompareConcepts(a.concept, b.concept)
		})
	}
	return p, nil
}

// rectangle returns the cells extent × intent, or nil if either side is empty.
func rectangle(concept fcago.Concept, attributes int) *roaring.Bitmap {
	if concept.Extent.IsEmpty() || concept.Intent.IsEmpty() {
		return nil
	}
	intent := concept.Intent.Indices()
	cells := make([]uint32, 0, concept.Extent.Count()*len(intent))
	for i := range concept.Extent.Iter() {
		base := uint32(i * attributes)
		for _, j := range intent {
			cells = append(cells, base+uint32(j))
		}
	}
	return roaring.BitmapOf(cells...)
}

// relation returns the set cells of c as cell ids.
func relation(c *fcago.Context) *roaring.Bitmap {
	_, attributes := c.Shape()
	u := roaring.New()
	for i, row := range c.Rows() {
		base := uint32(i * attributes)
		for j := range row.Iter() {
			u.Add(base + uint32(j))
		}
	}
	return u
}

// scanCheckInterval is the number of candidates scanned between checks of
// the context.
const scanCheckInterval = 256

// scan returns the live candidate in [lo, hi) with the largest coverage of u.
// Ties keep the lowest position. It stops with ctx.Err() once ctx is done.
func (p *pool) scan(ctx context.Context, u *roaring.Bitmap, lo, hi int) (selection, error) {
	best := selection{pos: -1}
	for pos := lo; pos < hi; pos++ {
		if (pos-lo)%scanCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return selection{pos: -1}, err
			}
		}
		cand := &p.items[pos]
		if !cand.live || cand.rect == nil {
			continue
		}
		if count := int(u.AndCardinality(cand.rect)); count > best.count {
			best = selection{pos: pos, count: count}
		}
	}
	return best, nil
}

// scanParallel splits the arena into contiguous chunks, scans them
// concurrently and reduces the chunk winners in position order, which gives
// the same selection as scan. The first failing chunk cancels the others.
func (p *pool) scanParallel(ctx context.Context, u *roaring.Bitmap, workers int) (selection, error) {
	n := len(p.items)
	if workers > n {
		workers = n
	}
	if workers < 2 {
		return p.scan(ctx, u, 0, n)
	}

	chunk := (n + workers - 1) / workers
	results := make([]selection, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		lo, hi := w*chunk, min((w+1)*chunk, n)
		g.Go(func() error {
			var err error
			results[w], err = p.scan(gctx, u, lo, hi)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return selection{pos: -1}, err
	}

	best := selection{pos: -1}
	for _, r := range results {
		if r.count > best.count {
			best = r
		}
	}
	return best, nil
}

// remove takes the candidate at pos out of the pool.
func (p *pool) remove(pos int) {
	p.items[pos].live = false
	p.items[pos].rect = nil
	p.live--
	if p.live*2 < len(p.items) {
		p.compact()
	}
}

func (p *pool) compact() {
	p.items = slices.DeleteFunc(p.items, func(c candidate) bool { return !c.live })
}
