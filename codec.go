package sparsewire

import (
	"context"
	"fmt"
)

type options struct {
	logger      *Logger
	validate    bool
	dimCheck    bool
	compression CompressionType
	parallelism int
}

// Option configures Codec behavior.
//
// Options exist to keep the API surface small: the zero configuration
// matches the pure package-level functions exactly.
type Option func(*options)

// WithLogger configures structured logging of encode/decode outcomes.
//
// If nil is passed, logging stays disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithValidation enables the boundary checks on row data: NaN values and
// the reserved index 2^32-1 are rejected before encode and after decode.
//
// This is an extension of the wire contract, off by default; the reference
// behavior passes such entries through unchanged.
func WithValidation() Option {
	return func(o *options) {
		o.validate = true
	}
}

// WithDimCheck enables recomputing the batch dimension during DecodeBatch
// and failing with *ErrDimMismatch when it differs from the declared Dim.
//
// Off by default: Dim is advisory metadata.
func WithDimCheck() Option {
	return func(o *options) {
		o.dimCheck = true
	}
}

// WithCompression selects the block compression used by EncodePayload.
// DecodePayload auto-detects from the frame header regardless.
func WithCompression(ct CompressionType) Option {
	return func(o *options) {
		o.compression = ct
	}
}

// WithParallelism configures the number of workers used to encode/decode
// large batches. Values <= 1 keep the sequential path. Small batches stay
// sequential either way; fan-out only pays off past a few thousand entries.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// Codec bundles the wire functions with opt-in validation, dim checking,
// payload compression, and parallel batch processing.
//
// A Codec is immutable after New and safe for concurrent use; the ownership
// rule for rows under encode (exclusive access per call) still applies.
type Codec struct {
	opts options
}

// New creates a Codec. With no options it behaves exactly like the
// package-level EncodeBatch/DecodeBatch.
func New(opts ...Option) *Codec {
	o := options{
		logger:      NoopLogger(),
		compression: CompressionNone,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return &Codec{opts: o}
}

// EncodeBatch serializes rows into a WireMessage.
//
// The context only bounds parallel work; the sequential path is CPU-bound
// and does not block. Rows are sorted in place.
func (c *Codec) EncodeBatch(ctx context.Context, rows []SparseVector) (*WireMessage, error) {
	if c.opts.validate {
		if err := validateRows(rows); err != nil {
			c.opts.logger.LogEncode(ctx, len(rows), 0, err)
			return nil, err
		}
	}

	var msg *WireMessage
	if c.parallelRows(len(rows)) {
		m, err := encodeBatchParallel(ctx, rows, c.opts.parallelism)
		if err != nil {
			c.opts.logger.LogEncode(ctx, len(rows), 0, err)
			return nil, err
		}
		msg = m
	} else {
		msg = EncodeBatch(rows)
	}

	c.opts.logger.LogEncode(ctx, len(rows), msg.Dim, nil)
	return msg, nil
}

// DecodeBatch deserializes a WireMessage, all-or-nothing.
func (c *Codec) DecodeBatch(ctx context.Context, msg *WireMessage) ([]SparseVector, error) {
	var (
		rows []SparseVector
		err  error
	)
	if c.parallelRows(len(msg.Contents)) {
		rows, err = decodeBatchParallel(ctx, msg, c.opts.parallelism)
	} else {
		rows, err = DecodeBatch(msg)
	}
	if err != nil {
		c.opts.logger.LogDecode(ctx, len(msg.Contents), err)
		return nil, err
	}

	if c.opts.dimCheck {
		if actual := BatchDim(rows); actual != msg.Dim {
			derr := &ErrDimMismatch{Declared: msg.Dim, Actual: actual}
			c.opts.logger.LogDecode(ctx, len(rows), derr)
			return nil, derr
		}
	}

	if c.opts.validate {
		if err := validateRows(rows); err != nil {
			c.opts.logger.LogDecode(ctx, len(rows), err)
			return nil, err
		}
	}

	c.opts.logger.LogDecode(ctx, len(rows), nil)
	return rows, nil
}

// EncodePayload encodes rows and frames the result into a single
// self-describing buffer using the configured compression.
func (c *Codec) EncodePayload(ctx context.Context, rows []SparseVector) ([]byte, error) {
	msg, err := c.EncodeBatch(ctx, rows)
	if err != nil {
		return nil, err
	}

	payload, err := MarshalPayload(msg, c.opts.compression)
	if err != nil {
		c.opts.logger.LogPayload(ctx, "marshal", 0, err)
		return nil, err
	}
	c.opts.logger.LogPayload(ctx, "marshal", len(payload), nil)
	return payload, nil
}

// DecodePayload unmarshals a framed buffer and decodes its rows.
func (c *Codec) DecodePayload(ctx context.Context, payload []byte) ([]SparseVector, error) {
	msg, err := UnmarshalPayload(payload)
	if err != nil {
		c.opts.logger.LogPayload(ctx, "unmarshal", len(payload), err)
		return nil, err
	}
	c.opts.logger.LogPayload(ctx, "unmarshal", len(payload), nil)

	return c.DecodeBatch(ctx, msg)
}

func (c *Codec) parallelRows(n int) bool {
	return c.opts.parallelism > 1 && n >= minParallelRows
}

func validateRows(rows []SparseVector) error {
	for i, row := range rows {
		if err := row.Validate(); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}
