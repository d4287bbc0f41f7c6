package sparsewire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseVectorSort(t *testing.T) {
	v := SparseVector{{10, 1.0}, {3, 0.3}, {7, 0.7}}
	v.Sort()
	assert.Equal(t, SparseVector{{3, 0.3}, {7, 0.7}, {10, 1.0}}, v)
}

func TestSparseVectorSortStable(t *testing.T) {
	v := SparseVector{{5, 1.0}, {5, 2.0}, {1, 0.1}, {5, 3.0}}
	v.Sort()
	assert.Equal(t, SparseVector{{1, 0.1}, {5, 1.0}, {5, 2.0}, {5, 3.0}}, v)
}

func TestSparseVectorMaxIndex(t *testing.T) {
	tests := []struct {
		name string
		v    SparseVector
		idx  uint32
		ok   bool
	}{
		{"empty", nil, 0, false},
		{"single", SparseVector{{7, 1.0}}, 7, true},
		{"unsorted", SparseVector{{9, 1.0}, {2, 2.0}, {5, 3.0}}, 9, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := tt.v.MaxIndex()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.idx, idx)
		})
	}
}

func TestSparseVectorValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		v := SparseVector{{0, 0.0}, {math.MaxUint32 - 1, float32(math.Inf(1))}}
		assert.NoError(t, v.Validate())
	})

	t.Run("NaN value", func(t *testing.T) {
		v := SparseVector{{1, 1.0}, {2, float32(math.NaN())}}
		err := v.Validate()
		require.Error(t, err)

		var entryErr *ErrInvalidEntry
		require.ErrorAs(t, err, &entryErr)
		assert.Equal(t, 1, entryErr.Position)
		assert.Equal(t, "NaN value", entryErr.Reason)
	})

	t.Run("reserved index", func(t *testing.T) {
		v := SparseVector{{ReservedIndex, 1.0}}
		err := v.Validate()
		require.Error(t, err)

		var entryErr *ErrInvalidEntry
		require.ErrorAs(t, err, &entryErr)
		assert.Equal(t, 0, entryErr.Position)
		assert.Equal(t, "reserved index", entryErr.Reason)
	})
}

func TestBatchDim(t *testing.T) {
	tests := []struct {
		name string
		rows []SparseVector
		dim  int64
	}{
		{"nil", nil, 0},
		{"empty rows", []SparseVector{{}, {}}, 0},
		{"unsorted rows", []SparseVector{{{50, 1.0}, {3, 2.0}}, {{20, 3.0}}}, 51},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.dim, BatchDim(tt.rows))
		})
	}
}
