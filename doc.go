// Package fcago provides formal contexts and their Galois connection for Go.
//
// A formal context is a binary relation between a set of objects and a set of
// attributes. fcago stores it twice, as bitset rows (attributes per object) and
// bitset columns (objects per attribute), and derives the two antitone
// operators of Formal Concept Analysis from it.
//
// # Quick Start
//
//	c, _ := fcago.New(
//	    [][]bool{{true, true}, {true, false}, {false, true}},
//	    []string{"o1", "o2", "o3"},
//	    []string{"a1", "a2"},
//	    fcago.WithName("example"),
//	)
//
//	x, _ := c.Objects().FromLabels("o1", "o2")
//	fmt.Println(c.Up(x))             // {a1}
//	fmt.Println(c.Down(c.Up(x)))     // {o1, o2}
//
// # Bit-vectors
//
// ObjectSet and AttributeSet are two instantiations of BitVector. They are
// distinct types, so an extent can never be passed where an intent is
// expected. All operations return new values; vectors and contexts are safe
// for concurrent readers.
//
// # Factorization
//
// The grecon subpackage selects formal concepts that greedily cover the
// relation (Boolean matrix factorization). The enumerate subpackage provides a
// reference enumerator of all formal concepts.
//
//	concepts, _ := enumerate.NextClosure{}.Concepts(ctx, c)
//	res, _ := grecon.Cover(ctx, c, concepts)
//	for _, f := range res.Factors() {
//	    fmt.Println(f)
//	}
//
// # Snapshots
//
// A context can be persisted with WriteTo / WriteSnapshot (zstd or lz4
// compressed) and restored with ReadContext. The fcago command in cmd/fcago
// inspects, converts and factorizes snapshot files.
//
// # Observability
//
// Logging goes through Logger (log/slog) and metrics through a
// MetricsCollector; both default to no-ops. BasicMetricsCollector keeps
// in-process counters and the prommetrics subpackage exports Prometheus
// series.
package fcago
