// Package featureindex maintains the inverted index behind natural-class
// queries: feature -> value -> posting bitmap of segment ordinals.
package featureindex

import (
	"slices"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// Index is an inverted feature index over dense segment ordinals.
//
// The zero value is not usable; call New. Readers may run concurrently with
// each other; Add/Remove take the write lock.
type Index struct {
	mu sync.RWMutex

	// feature -> value -> ordinals
	fields map[string]map[string]*roaring.Bitmap
}

func New() *Index {
	return &Index{fields: make(map[string]map[string]*roaring.Bitmap)}
}

// Add indexes every (feature, value) pair of features under id.
func (ix *Index) Add(id uint32, features map[string]string) {
	if ix == nil || len(features) == 0 {
		return
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for feature, value := range features {
		vm, ok := ix.fields[feature]
		if !ok {
			vm = make(map[string]*roaring.Bitmap)
			ix.fields[feature] = vm
		}
		ids, ok := vm[value]
		if !ok {
			ids = roaring.New()
			vm[value] = ids
		}
		ids.Add(id)
	}
}

// Remove drops every (feature, value) posting of features for id, pruning
// empty posting lists and empty features.
func (ix *Index) Remove(id uint32, features map[string]string) {
	if ix == nil || len(features) == 0 {
		return
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()

	for feature, value := range features {
		vm, ok := ix.fields[feature]
		if !ok {
			continue
		}
		ids, ok := vm[value]
		if !ok {
			continue
		}
		ids.Remove(id)
		if ids.IsEmpty() {
			delete(vm, value)
		}
		if len(vm) == 0 {
			delete(ix.fields, feature)
		}
	}
}

// Intersect returns the ordinals satisfying every constraint. A constraint on
// an unknown feature or value yields the empty bitmap. Constraints must be
// non-empty; "match everything" is the caller's case.
func (ix *Index) Intersect(constraints map[string]string) *roaring.Bitmap {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	sets := make([]*roaring.Bitmap, 0, len(constraints))
	for feature, value := range constraints {
		ids := ix.postingsLocked(feature, value)
		if ids == nil {
			// Feature/value doesn't exist; no segment can satisfy it.
			return roaring.New()
		}
		sets = append(sets, ids)
	}
	if len(sets) == 0 {
		return roaring.New()
	}

	// Intersect starting from the smallest posting set to reduce work.
	base := 0
	for i := 1; i < len(sets); i++ {
		if sets[i].GetCardinality() < sets[base].GetCardinality() {
			base = i
		}
	}

	out := sets[base].Clone()
	for i := range sets {
		if i == base {
			continue
		}
		out.And(sets[i])
		if out.IsEmpty() {
			break
		}
	}
	return out
}

// Values returns the distinct values observed for feature, sorted. An unknown
// feature yields an empty slice.
func (ix *Index) Values(feature string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	vm, ok := ix.fields[feature]
	if !ok {
		return nil
	}
	values := make([]string, 0, len(vm))
	for v := range vm {
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}

// Features returns the indexed feature names, sorted.
func (ix *Index) Features() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	features := make([]string, 0, len(ix.fields))
	for f := range ix.fields {
		features = append(features, f)
	}
	slices.Sort(features)
	return features
}

// Postings returns a copy of the posting bitmap for one (feature, value)
// pair, or nil if it is not indexed.
func (ix *Index) Postings(feature, value string) *roaring.Bitmap {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	ids := ix.postingsLocked(feature, value)
	if ids == nil {
		return nil
	}
	return ids.Clone()
}

func (ix *Index) postingsLocked(feature, value string) *roaring.Bitmap {
	vm, ok := ix.fields[feature]
	if !ok {
		return nil
	}
	ids, ok := vm[value]
	if !ok {
		return nil
	}
	return ids
}
