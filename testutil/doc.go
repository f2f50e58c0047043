// Package testutil provides testing utilities for fcago.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random boolean matrices and label sets.
//
// # Random Matrices
//
//	rng := testutil.NewRNG(seed)
//	m := rng.Matrix(20, 10, 0.5)   // 20x10, each cell set with p=0.5
//	m := rng.BinaryMatrix(20, 10)  // fair coin per cell
//
// # Fixed Matrices
//
//	testutil.Full(3, 4)
//	testutil.Empty(3, 4)
//	testutil.Identity(5)
package testutil
