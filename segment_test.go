package phono

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSegment(t *testing.T) {
	t.Run("NormalizesSymbolToNFC", func(t *testing.T) {
		composed := NewSegment("é", nil)   // precomposed
		decomposed := NewSegment("é", nil) // e + combining acute

		assert.Equal(t, "é", composed.Symbol())
		assert.Equal(t, "é", decomposed.Symbol())
		assert.Equal(t, composed.Symbol(), decomposed.Symbol())
	})

	t.Run("NilFeaturesYieldsEmptySpec", func(t *testing.T) {
		seg := NewSegment("p", nil)
		assert.Empty(t, seg.Features())

		_, ok := seg.Feature("voice")
		assert.False(t, ok)
	})

	t.Run("FeatureMapIsCopiedIn", func(t *testing.T) {
		spec := Features{"voice": "-"}
		seg := NewSegment("p", spec)

		spec["voice"] = "+"

		v, ok := seg.Feature("voice")
		require.True(t, ok)
		assert.Equal(t, "-", v)
	})

	t.Run("FeaturesReturnsCopy", func(t *testing.T) {
		seg := NewSegment("p", Features{"voice": "-"})

		got := seg.Features()
		got["voice"] = "+"

		v, _ := seg.Feature("voice")
		assert.Equal(t, "-", v)
	})

	t.Run("Named", func(t *testing.T) {
		seg := NewNamedSegment("p", "voiceless bilabial stop", Features{"voice": "-"})
		assert.Equal(t, "p", seg.Symbol())
		assert.Equal(t, "voiceless bilabial stop", seg.Name())
	})
}

func TestSentinels(t *testing.T) {
	t.Run("Identity", func(t *testing.T) {
		assert.Same(t, Null, Null)
		assert.NotSame(t, Null, AnyConsonant)
		assert.NotSame(t, AnyConsonant, AnyVowel)
		assert.NotSame(t, AnyVowel, WordBoundary)
	})

	t.Run("NoFeatures", func(t *testing.T) {
		for _, seg := range []*Segment{Null, AnyConsonant, AnyVowel, WordBoundary} {
			assert.Empty(t, seg.Features())
		}
	})

	t.Run("NullHasEmptySymbol", func(t *testing.T) {
		assert.Equal(t, "", Null.Symbol())
	})
}
