package sparsewire

import (
	"errors"
	"fmt"
)

var (
	// ErrPayloadTooShort is returned when a payload buffer ends before its
	// declared contents.
	ErrPayloadTooShort = errors.New("payload too short")

	// ErrBadMagic is returned when a payload does not start with the
	// sparsewire frame magic.
	ErrBadMagic = errors.New("invalid payload magic")
)

// ErrInvalidRowLength indicates a row buffer whose byte length is not a
// multiple of the 8-byte record size.
//
// It carries the offending length for diagnostics.
type ErrInvalidRowLength struct {
	Length int
}

func (e *ErrInvalidRowLength) Error() string {
	return fmt.Sprintf("sparse row length must be a multiple of 8, got %d", e.Length)
}

// ErrInvalidEntry indicates a row entry violating the boundary contract
// (NaN value or reserved index). Only produced by Validate/WithValidation.
type ErrInvalidEntry struct {
	Position int
	Entry    Entry
	Reason   string
}

func (e *ErrInvalidEntry) Error() string {
	return fmt.Sprintf("invalid entry at position %d (index=%d): %s", e.Position, e.Entry.Index, e.Reason)
}

// ErrDimMismatch indicates a declared batch dimension that does not match
// the dimension recomputed from the decoded rows. Only produced when the
// dim check is enabled via WithDimCheck.
type ErrDimMismatch struct {
	Declared int64
	Actual   int64
}

func (e *ErrDimMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: declared %d, computed %d", e.Declared, e.Actual)
}

// ErrUnknownVersion indicates a payload frame version this build cannot read.
type ErrUnknownVersion struct {
	Version uint8
}

func (e *ErrUnknownVersion) Error() string {
	return fmt.Sprintf("unknown payload version: %d", e.Version)
}

// ErrUnknownCompression indicates a payload compression byte this build
// cannot decode.
type ErrUnknownCompression struct {
	Type uint8
}

func (e *ErrUnknownCompression) Error() string {
	return fmt.Sprintf("unknown payload compression type: %d", e.Type)
}
