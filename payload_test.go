package sparsewire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() *WireMessage {
	return EncodeBatch([]SparseVector{
		{{5, 0.5}, {10, 1.0}},
		{},
		{{3, 0.25}, {1000, 1.5}},
	})
}

func TestPayloadRoundTrip(t *testing.T) {
	for _, ct := range []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(ct.String(), func(t *testing.T) {
			msg := testMessage()

			payload, err := MarshalPayload(msg, ct)
			require.NoError(t, err)

			got, err := UnmarshalPayload(payload)
			require.NoError(t, err)
			assert.Equal(t, msg.Dim, got.Dim)
			assert.Equal(t, msg.Contents, got.Contents)
		})
	}
}

func TestPayloadRoundTripEmptyBatch(t *testing.T) {
	msg := EncodeBatch(nil)

	payload, err := MarshalPayload(msg, CompressionNone)
	require.NoError(t, err)

	got, err := UnmarshalPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Dim)
	assert.Len(t, got.Contents, 0)
}

func TestMarshalPayloadUnknownCompression(t *testing.T) {
	_, err := MarshalPayload(testMessage(), CompressionType(42))

	var cerr *ErrUnknownCompression
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, uint8(42), cerr.Type)
}

func TestUnmarshalPayloadErrors(t *testing.T) {
	valid, err := MarshalPayload(testMessage(), CompressionNone)
	require.NoError(t, err)

	t.Run("too short", func(t *testing.T) {
		_, err := UnmarshalPayload(valid[:4])
		assert.ErrorIs(t, err, ErrPayloadTooShort)
	})

	t.Run("bad magic", func(t *testing.T) {
		payload := append([]byte(nil), valid...)
		payload[0] = 'X'
		_, err := UnmarshalPayload(payload)
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("unknown version", func(t *testing.T) {
		payload := append([]byte(nil), valid...)
		payload[4] = 9

		_, err := UnmarshalPayload(payload)
		var verr *ErrUnknownVersion
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, uint8(9), verr.Version)
	})

	t.Run("unknown compression byte", func(t *testing.T) {
		payload := append([]byte(nil), valid...)
		payload[5] = 99

		_, err := UnmarshalPayload(payload)
		var cerr *ErrUnknownCompression
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, uint8(99), cerr.Type)
	})

	t.Run("truncated body", func(t *testing.T) {
		_, err := UnmarshalPayload(valid[:len(valid)-5])
		assert.ErrorIs(t, err, ErrPayloadTooShort)
	})

	t.Run("truncated compressed block", func(t *testing.T) {
		payload, err := MarshalPayload(testMessage(), CompressionZSTD)
		require.NoError(t, err)

		_, err = UnmarshalPayload(payload[:payloadHeaderSize+4])
		assert.Error(t, err)
	})
}

func TestPayloadRowBuffersStayDecodable(t *testing.T) {
	msg := testMessage()

	payload, err := MarshalPayload(msg, CompressionLZ4)
	require.NoError(t, err)

	got, err := UnmarshalPayload(payload)
	require.NoError(t, err)

	rows, err := DecodeBatch(got)
	require.NoError(t, err)
	assert.Equal(t, []SparseVector{
		{{5, 0.5}, {10, 1.0}},
		{},
		{{3, 0.25}, {1000, 1.5}},
	}, rows)
}
