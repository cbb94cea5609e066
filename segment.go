package phono

import (
	"maps"

	"golang.org/x/text/unicode/norm"
)

// Features maps feature names to feature values. It is used both for segment
// specifications and for natural-class query constraints. Values are opaque
// strings; "+", "-" and "0" are conventional but nothing is enforced.
type Features map[string]string

// Segment is one transcription symbol together with its feature
// specification. Segments are immutable after construction; within an
// inventory, identity is by symbol.
//
// The symbol may span multiple codepoints (an affricate written with a tie
// bar, a base letter plus diacritics). It is NFC-normalized at construction
// so that symbols and transcription input compare equal regardless of how
// the caller composed them.
type Segment struct {
	symbol   string
	name     string
	features Features
}

// Sentinel segments for rule and display contexts. They carry no features,
// are shared process-wide and compare by identity.
var (
	// Null marks the absence of a segment (empty symbol).
	Null = &Segment{}
	// AnyConsonant is the generic consonant placeholder.
	AnyConsonant = &Segment{symbol: "C"}
	// AnyVowel is the generic vowel placeholder.
	AnyVowel = &Segment{symbol: "V"}
	// WordBoundary marks a word edge.
	WordBoundary = &Segment{symbol: "#"}
)

// NewSegment creates an unnamed segment. The symbol is NFC-normalized and the
// feature map is copied; a nil map yields an empty specification. Feature
// values are not validated; any string is legal.
func NewSegment(symbol string, features Features) *Segment {
	return NewNamedSegment(symbol, "", features)
}

// NewNamedSegment creates a segment with a human-readable label.
func NewNamedSegment(symbol, name string, features Features) *Segment {
	return &Segment{
		symbol:   norm.NFC.String(symbol),
		name:     name,
		features: maps.Clone(features),
	}
}

// Symbol returns the normalized transcription symbol.
func (s *Segment) Symbol() string { return s.symbol }

// Name returns the optional human-readable label, or "".
func (s *Segment) Name() string { return s.name }

// Feature returns the value of one feature and whether it is specified.
func (s *Segment) Feature(name string) (string, bool) {
	v, ok := s.features[name]
	return v, ok
}

// Features returns a copy of the feature specification. Mutating the returned
// map does not affect the segment.
func (s *Segment) Features() Features {
	if s.features == nil {
		return Features{}
	}
	return maps.Clone(s.features)
}

// String implements fmt.Stringer.
func (s *Segment) String() string { return s.symbol }
