// Package aztec assembles the mode-table, sequencer, bit-packer,
// codeword-assembler, and symbol-layout stages behind a single
// Encode(payload, options) entry point, per spec.md §4.H.
package aztec

import (
	"errors"
	"fmt"

	"github.com/gocodec/aztec/aztec/encoder"
	"github.com/gocodec/aztec/bitutil"
	"github.com/gocodec/aztec/charset"
)

// Sentinel errors matching spec.md §7's error kinds.
var (
	ErrPayloadTooLarge    = encoder.ErrPayloadTooLarge
	ErrUnknownEncoding    = charset.ErrUnknownEncoding
	ErrInvalidECParameter = errors.New("aztec: ec_percent must be in [0,100]")
)

// Payload is a caller-supplied message reduced to its internal
// representation (spec.md §3): raw bytes plus an optional ECI encoding
// name. Encoding is "" when no ECI should be announced.
type Payload struct {
	Bytes    []byte
	Encoding string
}

// NewTextPayload transcodes s into the bytes encoding would actually
// produce (via the charset package's opaque Encoder collaborator) and
// tags the payload with that ECI name.
func NewTextPayload(s, encoding string) (Payload, error) {
	b, err := charset.Encode(s, encoding)
	if err != nil {
		return Payload{}, err
	}
	return Payload{Bytes: b, Encoding: encoding}, nil
}

// NewBytePayload wraps raw bytes with no ECI.
func NewBytePayload(b []byte) Payload {
	return Payload{Bytes: b}
}

// DefaultECPercent is the error-correction overhead used when ECPercent is
// left nil (spec.md §4.H's `ec_percent=23` default).
const DefaultECPercent = 23

// Options configures Encode. ECPercent is a pointer so the legal value 0
// ("no Reed-Solomon redundancy", spec.md §6: ec_percent ranges over
// [0,100] inclusive) stays distinguishable from "not specified, use the
// default" — nil means the latter. Layers is 0 for automatic size
// selection, a positive value to force a Full-Range layer count, or its
// negation to force a Compact layer count (spec.md §3's compact/layers
// parameters).
type Options struct {
	ECPercent *int
	Layers    int
}

// Result is the encoded symbol: the bit matrix plus the derived symbol
// parameters (spec.md §6, "Output").
type Result struct {
	Matrix  *bitutil.BitMatrix
	Compact bool
	Layers  int
	Size    int
}

// Encode runs the full A-G pipeline over payload and returns the finished
// symbol (spec.md §4.H).
func Encode(payload Payload, opts Options) (*Result, error) {
	ecPercent := DefaultECPercent
	if opts.ECPercent != nil {
		ecPercent = *opts.ECPercent
	}
	if ecPercent < 0 || ecPercent > 100 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidECParameter, ecPercent)
	}
	if payload.Encoding != "" && !charset.Known(payload.Encoding) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, payload.Encoding)
	}

	tokens, err := encoder.Sequence(payload.Bytes, payload.Encoding)
	if err != nil {
		return nil, err
	}
	bits := encoder.PackBits(tokens)

	sym, err := encoder.Assemble(bits, ecPercent, opts.Layers)
	if err != nil {
		return nil, err
	}

	return &Result{Matrix: sym.Matrix, Compact: sym.Compact, Layers: sym.Layers, Size: sym.Size}, nil
}
