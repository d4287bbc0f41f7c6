package sparsewire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// entrySize is the fixed wire size of one (index, value) record.
const entrySize = 8

// WireMessage is the serialized form of a batch of sparse vectors.
//
// Contents holds one opaque buffer per row, in input order. Dim is an
// advisory summary (one plus the largest index in the batch, 0 when the
// batch carries no entries); decode treats it as metadata and does not
// cross-check it against the rows.
type WireMessage struct {
	Contents [][]byte
	Dim      int64
}

// EncodeRow serializes a single row.
//
// The row is first sorted in place, stable ascending by index; the caller
// must have exclusive access to it for the duration of the call. Each entry
// then becomes 8 bytes: uint32 little-endian index followed by float32
// little-endian value. An empty row yields an empty buffer.
func EncodeRow(row SparseVector) []byte {
	row.Sort()

	buf := make([]byte, 0, len(row)*entrySize)
	for _, e := range row {
		buf = binary.LittleEndian.AppendUint32(buf, e.Index)
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(e.Value))
	}
	return buf
}

// EncodeBatch serializes a batch of rows into a WireMessage.
//
// Each row is sorted in place (see EncodeRow) and serialized to one buffer;
// buffer order matches input order. Dim is one plus the largest index seen
// across the batch, or 0 when no entries exist anywhere. Encoding cannot
// fail for well-typed input.
func EncodeBatch(rows []SparseVector) *WireMessage {
	contents := make([][]byte, 0, len(rows))
	var dim int64

	for _, row := range rows {
		contents = append(contents, EncodeRow(row))
		// Row is sorted now, so the max index is the last entry.
		if n := len(row); n > 0 {
			if d := int64(row[n-1].Index) + 1; d > dim {
				dim = d
			}
		}
	}

	return &WireMessage{Contents: contents, Dim: dim}
}

// DecodeRow deserializes a single row buffer.
//
// The buffer length must be a multiple of 8; otherwise DecodeRow fails with
// *ErrInvalidRowLength carrying the offending length. Records are decoded
// in buffer order. Sortedness is the producer's contract and is not
// re-validated here.
func DecodeRow(data []byte) (SparseVector, error) {
	if len(data)%entrySize != 0 {
		return nil, &ErrInvalidRowLength{Length: len(data)}
	}

	row := make(SparseVector, 0, len(data)/entrySize)
	for off := 0; off < len(data); off += entrySize {
		row = append(row, Entry{
			Index: binary.LittleEndian.Uint32(data[off:]),
			Value: math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:])),
		})
	}
	return row, nil
}

// DecodeBatch deserializes every row buffer of a WireMessage, in order.
//
// Decoding is all-or-nothing: the first malformed row aborts the batch and
// its error is returned, annotated with the row position; no partial result
// is returned. The typed row error remains reachable via errors.As. Dim is
// not cross-checked (see WithDimCheck for the opt-in integrity check).
func DecodeBatch(msg *WireMessage) ([]SparseVector, error) {
	rows := make([]SparseVector, len(msg.Contents))
	for i, data := range msg.Contents {
		row, err := DecodeRow(data)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows[i] = row
	}
	return rows, nil
}
