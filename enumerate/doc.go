// Package enumerate lists every formal concept of a context.
//
// NextClosure implements Ganter's algorithm: intents are produced in lectic
// order, each one derived from its predecessor by a single closure test per
// attribute, so the concepts come out exactly once and without a lookup table.
// The output satisfies the grecon.Enumerator contract.
package enumerate
