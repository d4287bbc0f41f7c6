package sparsewire

import (
	"math"
	"sort"
)

// ReservedIndex is the largest uint32 value, reserved by the wire format.
// Well-formed rows never use it; Validate rejects it.
const ReservedIndex uint32 = math.MaxUint32

// Entry is a single (index, value) pair of a sparse vector.
type Entry struct {
	Index uint32
	Value float32
}

// SparseVector is one logical row: the non-zero entries of a vector in a
// high-dimensional, mostly-zero space.
type SparseVector []Entry

// Sort orders the entries ascending by index.
// The sort is stable: entries sharing an index keep their relative order.
func (v SparseVector) Sort() {
	sort.SliceStable(v, func(i, j int) bool {
		return v[i].Index < v[j].Index
	})
}

// MaxIndex returns the largest index in the row.
// ok is false for an empty row.
func (v SparseVector) MaxIndex() (idx uint32, ok bool) {
	for _, e := range v {
		if !ok || e.Index > idx {
			idx = e.Index
			ok = true
		}
	}
	return idx, ok
}

// Validate checks the boundary contract for well-formed input: values must
// not be NaN and indices must not be the reserved value 2^32-1.
//
// Neither encode nor decode calls this; the wire format passes such entries
// through unchanged. Callers opt in here (or via WithValidation) at the
// point where row data enters the system.
func (v SparseVector) Validate() error {
	for i, e := range v {
		if e.Index == ReservedIndex {
			return &ErrInvalidEntry{Position: i, Entry: e, Reason: "reserved index"}
		}
		if math.IsNaN(float64(e.Value)) {
			return &ErrInvalidEntry{Position: i, Entry: e, Reason: "NaN value"}
		}
	}
	return nil
}

// BatchDim recomputes the advisory dimension of a batch: one plus the
// largest index over all entries in all rows, or 0 when no entries exist.
// Rows need not be sorted.
func BatchDim(rows []SparseVector) int64 {
	var dim int64
	for _, row := range rows {
		for _, e := range row {
			if d := int64(e.Index) + 1; d > dim {
				dim = d
			}
		}
	}
	return dim
}
