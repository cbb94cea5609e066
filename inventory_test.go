package phono

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stopsTable() Table {
	return Table{
		"p": {"voice": "-", "place": "labial", "manner": "stop"},
		"b": {"voice": "+", "place": "labial", "manner": "stop"},
		"t": {"voice": "-", "place": "coronal", "manner": "stop"},
		"d": {"voice": "+", "place": "coronal", "manner": "stop"},
		"m": {"voice": "+", "place": "labial", "manner": "nasal"},
		"a": {"height": "low", "backness": "central"},
	}
}

func symbols(segs []*Segment) []string {
	out := make([]string, len(segs))
	for i, seg := range segs {
		out[i] = seg.Symbol()
	}
	return out
}

func TestFromTable(t *testing.T) {
	t.Run("EmptyConstraintsReturnEverything", func(t *testing.T) {
		inv, err := FromTable(stopsTable())
		require.NoError(t, err)

		assert.Equal(t, 6, inv.Len())
		assert.Len(t, inv.Segments(nil), 6)
		assert.Len(t, inv.Segments(Features{}), 6)
	})

	t.Run("DeterministicOrder", func(t *testing.T) {
		inv, err := FromTable(stopsTable())
		require.NoError(t, err)

		// Sorted insertion, independent of map iteration order.
		assert.Equal(t, []string{"a", "b", "d", "m", "p", "t"}, inv.Symbols())
		assert.Equal(t, inv.Symbols(), symbols(inv.Segments(nil)))
	})

	t.Run("EverySegmentInItsOwnNaturalClasses", func(t *testing.T) {
		inv, err := FromTable(stopsTable())
		require.NoError(t, err)

		for seg := range inv.All() {
			for feature, value := range seg.Features() {
				assert.Contains(t, inv.Segments(Features{feature: value}), seg,
					"segment %q missing from class %s=%s", seg.Symbol(), feature, value)
			}
		}
	})

	t.Run("IntersectionEqualsPairwise", func(t *testing.T) {
		inv, err := FromTable(stopsTable())
		require.NoError(t, err)

		both := inv.Segments(Features{"voice": "+", "place": "labial"})
		assert.Equal(t, []string{"b", "m"}, symbols(both))

		voiced := symbols(inv.Segments(Features{"voice": "+"}))
		labial := symbols(inv.Segments(Features{"place": "labial"}))
		for _, s := range symbols(both) {
			assert.Contains(t, voiced, s)
			assert.Contains(t, labial, s)
		}
	})

	t.Run("UnknownFeatureOrValueIsEmptyNotError", func(t *testing.T) {
		inv, err := FromTable(stopsTable())
		require.NoError(t, err)

		assert.Empty(t, inv.Segments(Features{"voice": "0"}))
		assert.Empty(t, inv.Segments(Features{"nasality": "+"}))
		assert.Empty(t, inv.Segments(Features{"voice": "+", "nasality": "+"}))
		assert.Empty(t, inv.Values("nasality"))
	})

	t.Run("Values", func(t *testing.T) {
		inv, err := FromTable(stopsTable())
		require.NoError(t, err)

		assert.Equal(t, []string{"+", "-"}, inv.Values("voice"))
		assert.Equal(t, []string{"coronal", "labial"}, inv.Values("place"))
		assert.Equal(t, []string{"backness", "height", "manner", "place", "voice"}, inv.Features())
	})

	t.Run("NilSpecFailsAtConstruction", func(t *testing.T) {
		_, err := FromTable(Table{"p": {"voice": "-"}, "x": nil})

		var malformed *ErrMalformedTable
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, "x", malformed.Symbol)
	})

	t.Run("RootIsItsOwnFeatureSystem", func(t *testing.T) {
		inv, err := FromTable(stopsTable())
		require.NoError(t, err)

		assert.Same(t, inv, inv.FeatureSystem())
		assert.True(t, inv.Sealed())
	})

	t.Run("SymbolLookupNormalizesNFC", func(t *testing.T) {
		inv, err := FromTable(Table{"é": {"height": "mid"}}) // decomposed key
		require.NoError(t, err)

		seg, ok := inv.Segment("é") // precomposed lookup
		require.True(t, ok)
		assert.Equal(t, "é", seg.Symbol())
	})
}

func TestAddSegment(t *testing.T) {
	t.Run("SealedInventoryRejectsWrites", func(t *testing.T) {
		inv, err := FromTable(stopsTable())
		require.NoError(t, err)

		err = inv.AddSegment(NewSegment("k", Features{"voice": "-"}))
		assert.ErrorIs(t, err, ErrSealed)
	})

	t.Run("NilSegment", func(t *testing.T) {
		inv := NewInventory()
		assert.ErrorIs(t, inv.AddSegment(nil), ErrNilSegment)
	})

	t.Run("ReplaceReconcilesIndex", func(t *testing.T) {
		inv := NewInventory()
		require.NoError(t, inv.AddSegment(NewSegment("p", Features{"voice": "-"})))
		require.NoError(t, inv.AddSegment(NewSegment("p", Features{"voice": "+"})))
		inv.Seal()

		assert.Equal(t, 1, inv.Len())
		assert.Empty(t, inv.Segments(Features{"voice": "-"}))
		assert.Equal(t, []string{"p"}, symbols(inv.Segments(Features{"voice": "+"})))
		assert.Equal(t, []string{"+"}, inv.Values("voice"))
	})

	t.Run("ReplaceDropsOrphanedFeature", func(t *testing.T) {
		inv := NewInventory()
		require.NoError(t, inv.AddSegment(NewSegment("p", Features{"voice": "-", "aspirated": "-"})))
		require.NoError(t, inv.AddSegment(NewSegment("p", Features{"voice": "-"})))
		inv.Seal()

		assert.Empty(t, inv.Values("aspirated"))
		assert.Empty(t, inv.Segments(Features{"aspirated": "-"}))
	})
}

func TestDerive(t *testing.T) {
	t.Run("DistinctiveDropsSingleValuedFeatures", func(t *testing.T) {
		parent, err := FromTable(stopsTable())
		require.NoError(t, err)

		child, err := parent.Derive([]string{"p", "b"})
		require.NoError(t, err)

		// voice distinguishes p from b; place and manner do not.
		p, ok := child.Segment("p")
		require.True(t, ok)
		assert.Equal(t, Features{"voice": "-"}, p.Features())

		b, ok := child.Segment("b")
		require.True(t, ok)
		assert.Equal(t, Features{"voice": "+"}, b.Features())

		assert.Equal(t, []string{"voice"}, child.Features())
	})

	t.Run("FullFeaturesKeepsParentSpecs", func(t *testing.T) {
		parent, err := FromTable(stopsTable())
		require.NoError(t, err)

		child, err := parent.Derive([]string{"p", "b"}, WithFullFeatures())
		require.NoError(t, err)

		p, ok := child.Segment("p")
		require.True(t, ok)
		pp, ok := parent.Segment("p")
		require.True(t, ok)
		assert.Equal(t, pp.Features(), p.Features())
	})

	t.Run("AbsentFeatureIsNotAValue", func(t *testing.T) {
		parent, err := FromTable(stopsTable())
		require.NoError(t, err)

		// voice appears on p and b with two values; a has no voice at all.
		// height appears only on a, with a single value, so it drops.
		child, err := parent.Derive([]string{"p", "b", "a"})
		require.NoError(t, err)

		a, ok := child.Segment("a")
		require.True(t, ok)
		assert.Empty(t, a.Features())

		_, hasVoice := a.Feature("voice")
		assert.False(t, hasVoice)
		assert.Equal(t, []string{"voice"}, child.Features())
	})

	t.Run("PreservesGivenOrder", func(t *testing.T) {
		parent, err := FromTable(stopsTable())
		require.NoError(t, err)

		child, err := parent.Derive([]string{"t", "p", "b"})
		require.NoError(t, err)
		assert.Equal(t, []string{"t", "p", "b"}, child.Symbols())
	})

	t.Run("UnknownSymbol", func(t *testing.T) {
		parent, err := FromTable(stopsTable())
		require.NoError(t, err)

		_, err = parent.Derive([]string{"p", "x"})
		var unknown *ErrUnknownSymbol
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "x", unknown.Symbol)
	})

	t.Run("FeatureSystemBackReference", func(t *testing.T) {
		parent, err := FromTable(stopsTable())
		require.NoError(t, err)

		child, err := parent.Derive([]string{"p", "b"})
		require.NoError(t, err)

		assert.Same(t, parent, child.FeatureSystem())
		assert.True(t, child.Sealed())
	})

	t.Run("DerivedSegmentsAreFreshEntities", func(t *testing.T) {
		parent, err := FromTable(stopsTable())
		require.NoError(t, err)

		child, err := parent.Derive([]string{"p", "b"})
		require.NoError(t, err)

		p, _ := parent.Segment("p")
		cp, _ := child.Segment("p")
		assert.NotSame(t, p, cp)

		// Parent spec untouched by minimization.
		assert.Equal(t, Features{"voice": "-", "place": "labial", "manner": "stop"}, p.Features())
	})
}

func TestChartMeta(t *testing.T) {
	chart := &ChartMeta{
		PlaceOrder:  []string{"labial", "coronal"},
		MannerOrder: []string{"stop", "nasal"},
	}

	inv, err := FromTable(stopsTable(), WithChart(chart))
	require.NoError(t, err)
	assert.Same(t, chart, inv.Chart())

	child, err := inv.Derive([]string{"p", "b"})
	require.NoError(t, err)
	assert.Same(t, chart, child.Chart())
}

// End-to-end sanity: the two-segment voicing example.
func TestEndToEnd(t *testing.T) {
	inv, err := FromTable(Table{
		"p": {"voice": "-"},
		"b": {"voice": "+"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"p"}, symbols(inv.Segments(Features{"voice": "-"})))
	assert.Equal(t, []string{"+", "-"}, inv.Values("voice"))

	tok := NewTokenizer(inv)

	segs, err := tok.Parse("pb")
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "b"}, symbols(segs))

	_, err = tok.Parse("px")
	var noMatch *ErrNoMatch
	require.ErrorAs(t, err, &noMatch)
	assert.Equal(t, 1, noMatch.Offset)
}
