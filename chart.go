package phono

// VowelClass is a renderer-facing vowel classification.
type VowelClass struct {
	Height   string
	Backness string
	Rounded  bool
}

// ChartMeta carries display-oriented classification hints for chart
// renderers: row/column orderings for consonant tables and a vowel
// classifier callback.
//
// The engine stores ChartMeta verbatim and never consults it. Natural-class
// queries, derivation and tokenization are unaffected by its contents.
type ChartMeta struct {
	// PlaceOrder is the column order for consonant charts (e.g. labial,
	// coronal, dorsal, ...).
	PlaceOrder []string

	// MannerOrder is the row order for consonant charts (e.g. stop,
	// fricative, nasal, ...).
	MannerOrder []string

	// ClassifyVowel places a segment on the vowel quadrilateral. May be nil.
	ClassifyVowel func(s *Segment) VowelClass
}
