package phono

import (
	"iter"
	"maps"
	"slices"

	"golang.org/x/text/unicode/norm"

	"github.com/hupe1980/phono/internal/featureindex"
)

// Table is a raw feature table: symbol -> feature specification.
type Table map[string]Features

// Inventory owns a set of segments and an inverted index over their features.
//
// Invariant: for every segment and every (feature, value) pair on it, the
// segment's ordinal is indexed under exactly that feature/value, and the
// index holds no posting not backed by a live segment.
//
// An inventory is either a root (it is its own feature system) or derived
// from a parent via Derive. The feature-system field is a plain back
// reference used for classification lookups; it implies no ownership.
type Inventory struct {
	segments map[string]*Segment
	order    []string // symbols in insertion order; position = ordinal
	ordinals map[string]uint32
	index    *featureindex.Index

	featureSystem *Inventory
	chart         *ChartMeta
	logger        *Logger
	sealed        bool
}

// NewInventory returns an empty, unsealed root inventory. Populate it with
// AddSegment and freeze it with Seal before querying from multiple
// goroutines.
func NewInventory(optFns ...Option) *Inventory {
	o := applyOptions(optFns)

	inv := &Inventory{
		segments: make(map[string]*Segment),
		ordinals: make(map[string]uint32),
		index:    featureindex.New(),
		chart:    o.chart,
		logger:   o.logger,
	}
	inv.featureSystem = inv
	return inv
}

// FromTable builds a sealed root inventory from a raw feature table. Every
// table entry becomes one unnamed segment. Symbols are inserted in sorted
// order so iteration and tokenizer construction are deterministic regardless
// of map iteration order.
//
// A nil feature specification is a construction-time error
// (*ErrMalformedTable); an empty one is legal.
func FromTable(table Table, optFns ...Option) (*Inventory, error) {
	inv := NewInventory(optFns...)

	symbols := slices.Sorted(maps.Keys(table))
	for _, symbol := range symbols {
		spec := table[symbol]
		if spec == nil {
			err := &ErrMalformedTable{Symbol: symbol}
			inv.logger.LogBuild(len(inv.order), err)
			return nil, err
		}
		if err := inv.AddSegment(NewSegment(symbol, spec)); err != nil {
			return nil, err
		}
	}

	inv.Seal()
	inv.logger.LogBuild(len(inv.order), nil)
	return inv, nil
}

// AddSegment inserts seg by symbol. Re-adding an existing symbol replaces the
// prior segment: the old segment's index postings are removed before the new
// ones are added, so the index never holds stale entries. Returns ErrSealed
// after Seal.
func (inv *Inventory) AddSegment(seg *Segment) error {
	if inv.sealed {
		return ErrSealed
	}
	if seg == nil {
		return ErrNilSegment
	}

	symbol := seg.symbol
	if old, ok := inv.segments[symbol]; ok {
		inv.index.Remove(inv.ordinals[symbol], old.features)
	} else {
		inv.ordinals[symbol] = uint32(len(inv.order))
		inv.order = append(inv.order, symbol)
	}
	inv.segments[symbol] = seg
	inv.index.Add(inv.ordinals[symbol], seg.features)
	return nil
}

// Seal freezes the inventory; subsequent AddSegment calls fail with
// ErrSealed. Once sealed, the read path (Segments, Values, Segment,
// tokenization) is safe for unlimited concurrent readers.
func (inv *Inventory) Seal() { inv.sealed = true }

// Sealed reports whether the inventory is frozen.
func (inv *Inventory) Sealed() bool { return inv.sealed }

// Derive builds a sealed sub-inventory containing exactly the parent
// segments named in symbols, in the given order. The result's feature system
// is inv; chart metadata and logger are inherited.
//
// By default, every feature that takes a single distinct value across the
// whole selection is dropped from the derived segments: it does not
// distinguish anything in this sub-inventory. WithFullFeatures keeps the
// complete parent specifications instead. A feature absent on some selected
// segments is considered only where present; absence is not a value.
//
// A symbol not present in inv is an *ErrUnknownSymbol.
func (inv *Inventory) Derive(symbols []string, optFns ...DeriveOption) (*Inventory, error) {
	o := applyDeriveOptions(optFns)

	selected := make([]*Segment, 0, len(symbols))
	for _, raw := range symbols {
		symbol := norm.NFC.String(raw)
		seg, ok := inv.segments[symbol]
		if !ok {
			return nil, &ErrUnknownSymbol{Symbol: symbol}
		}
		selected = append(selected, seg)
	}

	keep := func(feature string) bool { return true }
	if !o.fullFeatures {
		values := make(map[string]map[string]struct{})
		for _, seg := range selected {
			for feature, value := range seg.features {
				vm, ok := values[feature]
				if !ok {
					vm = make(map[string]struct{})
					values[feature] = vm
				}
				vm[value] = struct{}{}
			}
		}
		keep = func(feature string) bool { return len(values[feature]) > 1 }
	}

	child := &Inventory{
		segments: make(map[string]*Segment, len(selected)),
		ordinals: make(map[string]uint32, len(selected)),
		index:    featureindex.New(),
		chart:    inv.chart,
		logger:   inv.logger,
	}
	child.featureSystem = inv

	for _, seg := range selected {
		spec := make(Features, len(seg.features))
		for feature, value := range seg.features {
			if keep(feature) {
				spec[feature] = value
			}
		}
		derived := &Segment{symbol: seg.symbol, name: seg.name, features: spec}
		if err := child.AddSegment(derived); err != nil {
			return nil, err
		}
	}

	child.Seal()
	inv.logger.LogDerive(len(child.order), len(child.index.Features()), !o.fullFeatures)
	return child, nil
}

// Segments returns the natural class satisfying constraints, in insertion
// order. Empty or nil constraints match everything. A constraint naming an
// unknown feature or value yields an empty result, never an error; "no
// segments satisfy this" is a legitimate answer.
func (inv *Inventory) Segments(constraints Features) []*Segment {
	if len(constraints) == 0 {
		out := make([]*Segment, 0, len(inv.order))
		for _, symbol := range inv.order {
			out = append(out, inv.segments[symbol])
		}
		return out
	}

	ids := inv.index.Intersect(constraints)
	out := make([]*Segment, 0, ids.GetCardinality())
	it := ids.Iterator()
	for it.HasNext() {
		out = append(out, inv.segments[inv.order[it.Next()]])
	}
	return out
}

// Values returns the distinct values feature takes in this inventory, sorted
// lexicographically. An unknown feature yields an empty slice, consistent
// with the natural-class semantics of Segments.
func (inv *Inventory) Values(feature string) []string {
	return inv.index.Values(feature)
}

// Features returns the feature names present in this inventory, sorted.
func (inv *Inventory) Features() []string {
	return inv.index.Features()
}

// Segment looks up a segment by symbol. The symbol is NFC-normalized first,
// so composed and decomposed spellings find the same segment.
func (inv *Inventory) Segment(symbol string) (*Segment, bool) {
	seg, ok := inv.segments[norm.NFC.String(symbol)]
	return seg, ok
}

// Len returns the number of segments.
func (inv *Inventory) Len() int { return len(inv.order) }

// Symbols returns the symbols in insertion order.
func (inv *Inventory) Symbols() []string {
	return slices.Clone(inv.order)
}

// All iterates the segments in insertion order.
func (inv *Inventory) All() iter.Seq[*Segment] {
	return func(yield func(*Segment) bool) {
		for _, symbol := range inv.order {
			if !yield(inv.segments[symbol]) {
				return
			}
		}
	}
}

// FeatureSystem returns the inventory this one was derived from. A root
// inventory returns itself.
func (inv *Inventory) FeatureSystem() *Inventory { return inv.featureSystem }

// Chart returns the attached chart metadata, or nil.
func (inv *Inventory) Chart() *ChartMeta { return inv.chart }
