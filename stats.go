package sparsewire

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// BatchStats summarizes a batch of sparse vectors. It is a diagnostic aid
// (e.g. for deciding on compression or validation); the codec paths never
// consult it.
type BatchStats struct {
	// Rows is the number of rows in the batch, including empty ones.
	Rows int
	// Entries is the total entry count across all rows.
	Entries int
	// Dim is the advisory dimension: 1 + max index, 0 for an all-empty batch.
	Dim int64
	// DistinctIndices is the number of distinct indices used across the batch.
	DistinctIndices uint64
	// HasDuplicates reports whether any single row repeats an index.
	// Duplicates survive encoding as separate entries.
	HasDuplicates bool
}

// Stats computes BatchStats in one pass over the rows. Rows need not be
// sorted and are not modified.
func Stats(rows []SparseVector) BatchStats {
	s := BatchStats{Rows: len(rows)}

	batch := roaring.New()
	seen := roaring.New()

	for _, row := range rows {
		s.Entries += len(row)
		seen.Clear()

		for _, e := range row {
			if d := int64(e.Index) + 1; d > s.Dim {
				s.Dim = d
			}
			batch.Add(e.Index)

			if seen.Contains(e.Index) {
				s.HasDuplicates = true
			} else {
				seen.Add(e.Index)
			}
		}
	}

	s.DistinctIndices = batch.GetCardinality()
	return s
}
