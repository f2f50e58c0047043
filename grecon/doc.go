// Package grecon implements GreCon, a greedy Boolean matrix factorization
// that covers a formal context with formal concepts.
//
// Given a context and the complete set of its formal concepts, Cover
// repeatedly picks the concept whose extent × intent rectangle contains the
// most still-uncovered cells of the relation, marks those cells covered and
// removes the concept from the candidate pool, until every cell is covered.
// The selected concepts, in order, are the factors.
//
// The uncovered cells and the concept rectangles are roaring bitmaps over
// cell ids i*attributes+j, so one step costs one AndCardinality per live
// candidate.
//
// Ties between candidates with equal coverage go to the candidate seen first
// in the pool. With Options.Order = CanonicalOrder the pool is sorted by
// intent (then extent) bit pattern first, which makes the result independent
// of the order the enumerator emitted the concepts in.
package grecon
