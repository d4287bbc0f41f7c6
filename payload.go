package sparsewire

import (
	"encoding/binary"
	"fmt"
)

// Payload frame, little-endian throughout:
//
//	[Magic "SPWM":4][Version:1][Compression:1][Body]
//
// Body (block-compressed when Compression != none, see compress.go):
//
//	[Dim int64][RowCount uvarint]([RowLen uvarint][RowBytes])*
//
// The frame carries only the two fields the codec owns (row buffers + dim);
// the RPC envelope around it stays the transport layer's concern.
var payloadMagic = [4]byte{'S', 'P', 'W', 'M'}

const (
	payloadVersion    = 1
	payloadHeaderSize = 6
)

// MarshalPayload serializes a WireMessage into one self-describing buffer,
// optionally compressing the body.
func MarshalPayload(msg *WireMessage, compressionType CompressionType) ([]byte, error) {
	if !compressionType.valid() {
		return nil, &ErrUnknownCompression{Type: uint8(compressionType)}
	}

	bodySize := 8 + binary.MaxVarintLen64
	for _, data := range msg.Contents {
		bodySize += binary.MaxVarintLen64 + len(data)
	}

	body := make([]byte, 0, bodySize)
	body = binary.LittleEndian.AppendUint64(body, uint64(msg.Dim))
	body = binary.AppendUvarint(body, uint64(len(msg.Contents)))
	for _, data := range msg.Contents {
		body = binary.AppendUvarint(body, uint64(len(data)))
		body = append(body, data...)
	}

	if compressionType != CompressionNone {
		b, err := compressBlock(body, compressionType)
		if err != nil {
			return nil, err
		}
		body = b
	}

	payload := make([]byte, 0, payloadHeaderSize+len(body))
	payload = append(payload, payloadMagic[:]...)
	payload = append(payload, payloadVersion, byte(compressionType))
	payload = append(payload, body...)
	return payload, nil
}

// UnmarshalPayload parses a buffer produced by MarshalPayload. The
// compression type is taken from the frame header.
//
// Row buffers alias the payload (or its decompressed body); they are not
// copied.
func UnmarshalPayload(payload []byte) (*WireMessage, error) {
	if len(payload) < payloadHeaderSize {
		return nil, ErrPayloadTooShort
	}
	if [4]byte(payload[:4]) != payloadMagic {
		return nil, ErrBadMagic
	}
	if payload[4] != payloadVersion {
		return nil, &ErrUnknownVersion{Version: payload[4]}
	}

	compressionType := CompressionType(payload[5])
	if !compressionType.valid() {
		return nil, &ErrUnknownCompression{Type: payload[5]}
	}

	body := payload[payloadHeaderSize:]
	if compressionType != CompressionNone {
		b, err := decompressBlock(body, compressionType)
		if err != nil {
			return nil, fmt.Errorf("payload body: %w", err)
		}
		body = b
	}

	if len(body) < 8 {
		return nil, ErrPayloadTooShort
	}
	dim := int64(binary.LittleEndian.Uint64(body))
	body = body[8:]

	count, n := binary.Uvarint(body)
	if n <= 0 {
		return nil, fmt.Errorf("row count: %w", ErrPayloadTooShort)
	}
	body = body[n:]

	// Each row costs at least one length byte; anything beyond that is a
	// corrupt count.
	if count > uint64(len(body)) {
		return nil, fmt.Errorf("row count %d: %w", count, ErrPayloadTooShort)
	}

	contents := make([][]byte, 0, count)
	for i := uint64(0); i < count; i++ {
		rowLen, n := binary.Uvarint(body)
		if n <= 0 {
			return nil, fmt.Errorf("row %d length: %w", i, ErrPayloadTooShort)
		}
		body = body[n:]
		if uint64(len(body)) < rowLen {
			return nil, fmt.Errorf("row %d: %w", i, ErrPayloadTooShort)
		}
		contents = append(contents, body[:rowLen:rowLen])
		body = body[rowLen:]
	}

	return &WireMessage{Contents: contents, Dim: dim}, nil
}
