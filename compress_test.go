package sparsewire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressionTypeString(t *testing.T) {
	assert.Equal(t, "none", CompressionNone.String())
	assert.Equal(t, "lz4", CompressionLZ4.String())
	assert.Equal(t, "zstd", CompressionZSTD.String())
	assert.Equal(t, "unknown", CompressionType(42).String())
}

func TestCompressBlockRoundTrip(t *testing.T) {
	// Repetitive data compresses well with both algorithms.
	data := bytes.Repeat([]byte("sparse-vector-row-data"), 100)

	for _, ct := range []CompressionType{CompressionLZ4, CompressionZSTD} {
		t.Run(ct.String(), func(t *testing.T) {
			block, err := compressBlock(data, ct)
			require.NoError(t, err)
			assert.Less(t, len(block), len(data))

			got, err := decompressBlock(block, ct)
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}
}

func TestCompressBlockIncompressible(t *testing.T) {
	// A short high-entropy buffer gains nothing; it is stored raw behind
	// the block header and still round-trips.
	data := []byte{0x01, 0xfe, 0x42, 0x99, 0x13, 0x37, 0xab, 0xcd}

	for _, ct := range []CompressionType{CompressionLZ4, CompressionZSTD} {
		t.Run(ct.String(), func(t *testing.T) {
			block, err := compressBlock(data, ct)
			require.NoError(t, err)

			got, err := decompressBlock(block, ct)
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}
}

func TestDecompressBlockErrors(t *testing.T) {
	t.Run("short header", func(t *testing.T) {
		_, err := decompressBlock([]byte{1, 2, 3}, CompressionLZ4)
		assert.Error(t, err)
	})

	t.Run("truncated data", func(t *testing.T) {
		block, err := compressBlock(bytes.Repeat([]byte("abc"), 200), CompressionZSTD)
		require.NoError(t, err)

		_, err = decompressBlock(block[:len(block)-4], CompressionZSTD)
		assert.Error(t, err)
	})
}
