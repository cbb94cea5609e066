// Package phono provides an embeddable phonological feature inventory engine.
//
// An Inventory owns a set of segments (transcription symbols tagged with
// feature specifications) and answers natural-class queries over them through
// an inverted feature index. Sub-inventories derive from a parent feature
// system, optionally minimized to the features that actually distinguish the
// chosen segments, and a Tokenizer splits transcription strings into the
// segments of an inventory using maximal munch.
//
// # Quick Start
//
//	inv, _ := phono.FromTable(phono.Table{
//		"p": {"voice": "-", "place": "labial"},
//		"b": {"voice": "+", "place": "labial"},
//		"t": {"voice": "-", "place": "coronal"},
//	})
//
//	voiceless := inv.Segments(phono.Features{"voice": "-"}) // p, t
//
//	tok := phono.NewTokenizer(inv)
//	segs, err := tok.Parse("pb t")
//
// # Build-Then-Freeze
//
// Inventories follow a build-then-freeze discipline: construct (FromTable,
// Derive, or NewInventory plus AddSegment), then Seal, then query and tokenize
// from as many goroutines as you like. FromTable and Derive return sealed
// inventories.
//
// # Key Features
//
//   - Natural-class lookup over an inverted feature index (Roaring bitmaps)
//   - Distinctive-feature minimization when deriving sub-inventories
//   - Deterministic maximal-munch transcription tokenizer
//   - NFC-normalized symbols throughout (multi-codepoint symbols welcome)
//   - Snapshot persistence and YAML table loading in subpackages
package phono
