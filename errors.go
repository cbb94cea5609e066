package phono

import (
	"errors"
	"fmt"
)

var (
	// ErrSealed is returned when a segment is added to a sealed inventory.
	ErrSealed = errors.New("inventory is sealed")

	// ErrNilSegment is returned when a nil segment is added to an inventory.
	ErrNilSegment = errors.New("nil segment")
)

// ErrMalformedTable indicates a raw feature table entry with a missing or
// invalid feature specification.
type ErrMalformedTable struct {
	Symbol string
}

func (e *ErrMalformedTable) Error() string {
	return fmt.Sprintf("malformed feature table: no feature specification for %q", e.Symbol)
}

// ErrUnknownSymbol indicates a derivation referenced a symbol that is absent
// from the parent feature system.
type ErrUnknownSymbol struct {
	Symbol string
}

func (e *ErrUnknownSymbol) Error() string {
	return fmt.Sprintf("unknown symbol: %q", e.Symbol)
}

// ErrNoMatch indicates that tokenization stalled: no inventory symbol matches
// the input at Offset. Offset is a byte offset into the NFC-normalized input;
// Snippet holds the first few runes of the unmatched remainder.
type ErrNoMatch struct {
	Offset  int
	Snippet string
}

func (e *ErrNoMatch) Error() string {
	return fmt.Sprintf("no segment matches at byte offset %d: %q", e.Offset, e.Snippet)
}
