// Package featuretable loads raw feature tables from YAML documents.
//
// Table loading is a caller-side concern: the engine itself never touches
// the filesystem. This package is the conventional front door for callers
// that keep their feature systems in configuration files.
//
// Document layout:
//
//	segments:
//	  p: {voice: "-", place: labial, manner: stop}
//	  b: {voice: "+", place: labial, manner: stop}
//	names:
//	  p: voiceless bilabial stop
//	places: [labial, coronal, dorsal]
//	manners: [stop, fricative, nasal]
package featuretable

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/phono"
)

// Document is the on-disk shape of a feature system.
type Document struct {
	// Segments maps symbols to feature specifications.
	Segments map[string]map[string]string `yaml:"segments"`

	// Names maps symbols to optional human-readable labels.
	Names map[string]string `yaml:"names,omitempty"`

	// Places and Manners are chart orderings passed through to renderers.
	Places  []string `yaml:"places,omitempty"`
	Manners []string `yaml:"manners,omitempty"`
}

// Decode reads one YAML feature-system document from r.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode feature table: %w", err)
	}
	return &doc, nil
}

// Load reads a feature-system document from path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feature table: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Inventory builds a sealed root inventory from the document. Segment names
// come from the names section; chart orderings attach as phono.ChartMeta when
// present.
func (d *Document) Inventory(optFns ...phono.Option) (*phono.Inventory, error) {
	if len(d.Places) > 0 || len(d.Manners) > 0 {
		optFns = append(optFns, phono.WithChart(&phono.ChartMeta{
			PlaceOrder:  d.Places,
			MannerOrder: d.Manners,
		}))
	}
	inv := phono.NewInventory(optFns...)

	for _, symbol := range slices.Sorted(maps.Keys(d.Segments)) {
		spec := d.Segments[symbol]
		if spec == nil {
			return nil, &phono.ErrMalformedTable{Symbol: symbol}
		}
		seg := phono.NewNamedSegment(symbol, d.Names[symbol], phono.Features(spec))
		if err := inv.AddSegment(seg); err != nil {
			return nil, err
		}
	}

	inv.Seal()
	return inv, nil
}
