// Package util provides helpers for generating sparse test data.
package util

import (
	"math/rand"

	"github.com/hupe1980/sparsewire"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// GenerateSparseVectors generates num random rows using the given RNG.
// Each row has between 0 and maxEntries entries with indices in
// [0, maxIndex) and values in [0, 1).
func (r *RNG) GenerateSparseVectors(num, maxEntries int, maxIndex uint32) []sparsewire.SparseVector {
	rows := make([]sparsewire.SparseVector, num)
	for i := range rows {
		n := r.rand.Intn(maxEntries + 1)
		row := make(sparsewire.SparseVector, n)
		for j := range row {
			row[j] = sparsewire.Entry{
				Index: uint32(r.rand.Int63n(int64(maxIndex))),
				Value: r.rand.Float32(),
			}
		}
		rows[i] = row
	}

	return rows
}
