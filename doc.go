// Package sparsewire implements the client-side binary codec for sparse
// float vectors exchanged with a remote vector-database service.
//
// A sparse vector is a set of (index, value) entries. On the wire each row
// becomes one opaque byte buffer: a sequence of 8-byte records, 4 bytes
// little-endian uint32 index followed by 4 bytes little-endian IEEE-754
// float32 value, sorted ascending by index. A batch of rows travels as a
// WireMessage: the per-row buffers plus an advisory dimension equal to one
// plus the largest index in the batch.
//
// # Quick Start
//
// Pure functions cover the common case:
//
//	msg := sparsewire.EncodeBatch(rows)     // rows are sorted in place
//	rows, err := sparsewire.DecodeBatch(msg)
//
// The Codec type adds opt-in behavior on top of the same format:
//
//	c := sparsewire.New(
//	    sparsewire.WithValidation(),                     // reject NaN / reserved index
//	    sparsewire.WithCompression(sparsewire.CompressionZSTD),
//	    sparsewire.WithParallelism(4),                   // large-batch fan-out
//	)
//	payload, err := c.EncodePayload(ctx, rows)
//
// # Ownership
//
// Encoding sorts each row in place. A call requires exclusive access to its
// rows for its duration; the codec itself keeps no state between calls and
// is safe for concurrent use.
//
// # Boundary contract
//
// The codec does not check NaN values, the reserved index 2^32-1, or
// duplicate indices within a row; duplicates are preserved in their original
// relative order. WithValidation enables the boundary checks explicitly.
package sparsewire
