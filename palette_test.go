package vanmaps

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestSelectPaletteTwoBins(t *testing.T) {
	assert := require.New(t)

	// the two-bin pairing ignores the greyscale flag entirely
	for _, greyscale := range []bool{false, true} {
		palette, background := SelectPalette(2, greyscale)

		assert.Len(palette, 2)
		assert.Equal(BackgroundWhite, background)

		// light and mid grey, darkest class skipped
		assert.Equal(`#f0f0f0`, palette.Get(0))
		assert.Equal(`#bdbdbd`, palette.Get(1))
	}
}

func TestSelectPaletteGreyscale(t *testing.T) {
	assert := require.New(t)

	for bins := 3; bins <= MaxGreyscaleBins; bins++ {
		palette, background := SelectPalette(bins, true)

		assert.Len(palette, bins)
		assert.Equal(BackgroundWhite, background)

		// greys, with strictly increasing lightness across bins
		for i := 0; i < bins; i++ {
			color := palette.Color(i)
			assert.Equal(color.R, color.G)
			assert.Equal(color.G, color.B)

			if i > 0 {
				assert.True(color.R > palette.Color(i-1).R,
					"bins=%d: shade %d is not lighter than shade %d", bins, i, i-1)
			}
		}
	}
}

func TestSelectPaletteDiverging(t *testing.T) {
	assert := require.New(t)

	for bins := 3; bins <= MaxColorBins; bins++ {
		palette, background := SelectPalette(bins, false)

		assert.Len(palette, bins)
		assert.Equal(BackgroundSea, background)
		assert.Equal(palettePRGn[bins], palette)

		// diverging: purple end, green end
		first := palette.Color(0)
		last := palette.Color(bins - 1)
		assert.True(first.B > first.G, "bins=%d: low end is not purple", bins)
		assert.True(last.G > last.B, "bins=%d: high end is not green", bins)
	}
}

func TestPaletteGet(t *testing.T) {
	assert := require.New(t)

	palette := Palette{`f0f0f0`, `#bdbdbd`}

	assert.Equal(`#f0f0f0`, palette.Get(0))
	assert.Equal(`#bdbdbd`, palette.Get(1))
	assert.Equal(`#f0f0f0`, palette.Get(2))
	assert.Equal(``, Palette{}.Get(0))
}

func TestPaletteReversed(t *testing.T) {
	assert := require.New(t)

	palette := Palette{`a`, `b`, `c`}
	assert.Equal(Palette{`c`, `b`, `a`}, palette.Reversed())
	assert.Equal(Palette{`a`, `b`, `c`}, palette)
}
