package testutil

import (
	"fmt"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Matrix returns a rows x cols boolean matrix where each cell is set with
// probability density. Locks only once per call.
func (r *RNG) Matrix(rows, cols int, density float64) [][]bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := make([][]bool, rows)
	for i := range m {
		m[i] = make([]bool, cols)
		for j := range m[i] {
			m[i][j] = r.rand.Float64() < density
		}
	}
	return m
}

// BinaryMatrix returns a rows x cols matrix of fair coin flips.
func (r *RNG) BinaryMatrix(rows, cols int) [][]bool {
	return r.Matrix(rows, cols, 0.5)
}

// Full returns a rows x cols matrix with every cell set.
func Full(rows, cols int) [][]bool {
	m := Empty(rows, cols)
	for i := range m {
		for j := range m[i] {
			m[i][j] = true
		}
	}
	return m
}

// Empty returns a rows x cols matrix with no cell set.
func Empty(rows, cols int) [][]bool {
	m := make([][]bool, rows)
	for i := range m {
		m[i] = make([]bool, cols)
	}
	return m
}

// Identity returns the n x n matrix with only the diagonal set.
func Identity(n int) [][]bool {
	m := Empty(n, n)
	for i := range m {
		m[i][i] = true
	}
	return m
}

// Labels returns prefix0, prefix1, ..., prefix(n-1).
func Labels(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}

// Count returns the number of set cells of m.
func Count(m [][]bool) int {
	n := 0
	for _, row := range m {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}
