package vanmaps

import (
	"github.com/wcharczuk/go-chart"
	"github.com/wcharczuk/go-chart/drawing"
	"strings"
)

type Palette []string

func (self Palette) Get(index int) string {
	if len(self) == 0 {
		return ``
	}

	return `#` + strings.TrimPrefix(self[index%len(self)], `#`)
}

func (self Palette) Color(index int) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(self.Get(index), `#`))
}

// Reversed returns a copy of the palette in the opposite order.
func (self Palette) Reversed() Palette {
	out := make(Palette, len(self))

	for i, color := range self {
		out[len(self)-1-i] = color
	}

	return out
}

func MakeRegionStyles(each func(style *chart.Style), colors ...string) []chart.Style {
	styles := make([]chart.Style, len(colors))

	for i, color := range colors {
		style := styles[i]

		style.Show = true
		style.StrokeColor = drawing.ColorFromHex(strings.TrimPrefix(color, `#`))
		style.FillColor = drawing.ColorFromHex(strings.TrimPrefix(color, `#`))

		if each != nil {
			each(&style)
		}

		styles[i] = style
	}

	return styles
}

// ColorBrewer "Greys" sequential family, light to dark, keyed by class count.
var paletteGreys = map[int]Palette{
	3: {`f0f0f0`, `bdbdbd`, `636363`},
	4: {`f7f7f7`, `cccccc`, `969696`, `525252`},
	5: {`f7f7f7`, `cccccc`, `969696`, `636363`, `252525`},
	6: {`f7f7f7`, `d9d9d9`, `bdbdbd`, `969696`, `636363`, `252525`},
	7: {`f7f7f7`, `d9d9d9`, `bdbdbd`, `969696`, `737373`, `525252`, `252525`},
	8: {`ffffff`, `f0f0f0`, `d9d9d9`, `bdbdbd`, `969696`, `737373`, `525252`, `252525`},
	9: {`ffffff`, `f0f0f0`, `d9d9d9`, `bdbdbd`, `969696`, `737373`, `525252`, `252525`, `000000`},
}

// ColorBrewer "PRGn" diverging family (purple - neutral - green).
var palettePRGn = map[int]Palette{
	3:  {`af8dc3`, `f7f7f7`, `7fbf7b`},
	4:  {`7b3294`, `c2a5cf`, `a6dba0`, `008837`},
	5:  {`7b3294`, `c2a5cf`, `f7f7f7`, `a6dba0`, `008837`},
	6:  {`762a83`, `af8dc3`, `e7d4e8`, `d9f0d3`, `7fbf7b`, `1b7837`},
	7:  {`762a83`, `af8dc3`, `e7d4e8`, `f7f7f7`, `d9f0d3`, `7fbf7b`, `1b7837`},
	8:  {`762a83`, `9970ab`, `c2a5cf`, `e7d4e8`, `d9f0d3`, `a6dba0`, `5aae61`, `1b7837`},
	9:  {`762a83`, `9970ab`, `c2a5cf`, `e7d4e8`, `f7f7f7`, `d9f0d3`, `a6dba0`, `5aae61`, `1b7837`},
	10: {`40004b`, `762a83`, `9970ab`, `c2a5cf`, `e7d4e8`, `d9f0d3`, `a6dba0`, `5aae61`, `1b7837`, `00441b`},
	11: {`40004b`, `762a83`, `9970ab`, `c2a5cf`, `e7d4e8`, `f7f7f7`, `d9f0d3`, `a6dba0`, `5aae61`, `1b7837`, `00441b`},
}

var (
	BackgroundWhite = `ffffff`
	BackgroundSea   = `add8e6`
	NoDataGrey      = `c8c8c8`
)

type rampFamily struct {
	classes  map[int]Palette
	reversed bool
}

// paletteFamily maps a style request onto the ramp family that serves it and
// the ordering rule applied to that family.  Greys ship light-to-dark and are
// reversed so lightness increases with bin index.
func paletteFamily(greyscale bool) rampFamily {
	if greyscale {
		return rampFamily{
			classes:  paletteGreys,
			reversed: true,
		}
	}

	return rampFamily{
		classes: palettePRGn,
	}
}

// SelectPalette returns bins fill colors (index-aligned with the bins of a
// break sequence) and a background color.
//
// Two-bin maps are a special case: a light/mid grey pairing from the 3-class
// Greys ramp (the darkest class is skipped so adjacent bins stay distinct)
// on a white background, whatever the greyscale flag says.  Callers are
// expected to have validated bins via ValidateBinCount already.
func SelectPalette(bins int, greyscale bool) (Palette, string) {
	if bins == 2 {
		return Palette{
			paletteGreys[3][0],
			paletteGreys[3][1],
		}, BackgroundWhite
	}

	family := paletteFamily(greyscale)
	ramp := family.classes[bins]

	if family.reversed {
		ramp = ramp.Reversed()
	}

	background := BackgroundSea

	if greyscale {
		background = BackgroundWhite
	}

	return ramp, background
}
