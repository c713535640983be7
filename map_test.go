package vanmaps

import (
	"bytes"
	"fmt"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// makeTestRegions builds a grid of square regions; at county level every
// fifth region is flagged in-London.
func makeTestRegions(level GeographyLevel, n int) *RegionSet {
	set := NewRegionSet(level)

	for i := 0; i < n; i++ {
		col := i % 15
		row := i / 15

		x0 := float64(col) * 0.2
		y0 := 51.0 + float64(row)*0.2

		region := &Region{
			ID: fmt.Sprintf("Region %03d", i),
			Geometry: MultiPolygon{
				{
					{
						{x0, y0},
						{x0 + 0.2, y0},
						{x0 + 0.2, y0 + 0.2},
						{x0, y0 + 0.2},
						{x0, y0},
					},
				},
			},
		}

		if level == LevelCounty {
			region.InLondon = (i%5 == 0)
		}

		if err := set.Add(region); err != nil {
			panic(err)
		}
	}

	return set
}

func attachSequence(set *RegionSet, variable string) {
	values := make(map[string]float64)

	for i, region := range set.Regions {
		values[region.ID] = float64(50 + i%50)
	}

	set.AttachVariable(variable, values)
}

func TestMapClassify(t *testing.T) {
	assert := require.New(t)

	set := makeTestRegions(LevelCounty, 150)
	attachSequence(set, `response.mean`)

	m := NewMap(set)
	m.Options.Variable = `response.mean`
	m.Options.Qtiles = 5

	edges, palette, background, err := m.Classify()
	assert.NoError(err)
	assert.Len(edges, 6)
	assert.Len(palette, 5)
	assert.Equal(palettePRGn[5], palette)
	assert.Equal(BackgroundSea, background)
}

func TestMapClassifyErrors(t *testing.T) {
	assert := require.New(t)

	set := makeTestRegions(LevelCounty, 10)
	attachSequence(set, `response.mean`)

	m := NewMap(set)
	_, _, _, err := m.Classify()
	assert.Error(err) // no variable

	m.Options.Variable = `nope`
	_, _, _, err = m.Classify()
	assert.Error(err)
	assert.Contains(err.Error(), `unknown variable`)

	m.Options.Variable = `response.mean`
	m.Options.Qtiles = 10
	m.Options.Greyscale = true
	_, _, _, err = m.Classify()
	assert.True(IsConfigurationError(err))

	empty := NewRegionSet(LevelCounty)
	m = NewMap(empty)
	m.Options.Variable = `response.mean`
	_, _, _, err = m.Classify()
	assert.Error(err)
	assert.Contains(err.Error(), `empty`)
}

func TestMapRenderPNG(t *testing.T) {
	assert := require.New(t)

	set := makeTestRegions(LevelCounty, 30)
	attachSequence(set, `response.mean`)

	m := NewMap(set)
	m.Options.Variable = `response.mean`
	m.Options.Title = `Mean response time (minutes)`
	m.Options.Source = `Source: synthetic fixture`
	m.Options.Width = 400

	var buffer bytes.Buffer
	assert.NoError(m.Render(&buffer, RenderFormatPNG))
	assert.True(bytes.HasPrefix(buffer.Bytes(), pngSignature))
}

func TestMapRenderSVG(t *testing.T) {
	assert := require.New(t)

	set := makeTestRegions(LevelServiceArea, 10)
	attachSequence(set, `response.mean`)

	m := NewMap(set)
	m.Options.Variable = `response.mean`
	m.Options.Width = 400
	m.Options.Greyscale = true

	var buffer bytes.Buffer
	assert.NoError(m.Render(&buffer, RenderFormatSVG))
	assert.Contains(buffer.String(), `<svg`)
}

func TestMapRenderUnsupportedFormat(t *testing.T) {
	assert := require.New(t)

	set := makeTestRegions(LevelCounty, 10)
	attachSequence(set, `response.mean`)

	m := NewMap(set)
	m.Options.Variable = `response.mean`

	var buffer bytes.Buffer
	err := m.Render(&buffer, RenderFormat(`gif`))
	assert.Error(err)
	assert.Zero(buffer.Len())
}

func TestMapLondonViewRequiresCounties(t *testing.T) {
	assert := require.New(t)

	set := makeTestRegions(LevelServiceArea, 10)
	attachSequence(set, `response.mean`)

	m := NewMap(set)
	m.Options.Variable = `response.mean`
	m.Options.LondonOnly = true

	var buffer bytes.Buffer
	err := m.Render(&buffer, RenderFormatPNG)
	assert.Error(err)
	assert.Contains(err.Error(), `London`)
}

func TestMapGreyscalePropagatesToLondonView(t *testing.T) {
	assert := require.New(t)

	set := makeTestRegions(LevelCounty, 50)
	attachSequence(set, `response.mean`)

	m := NewMap(set)
	m.Options.Variable = `response.mean`
	m.Options.Greyscale = true
	m.Options.LondonOnly = true
	m.Options.Overlay = makeTestRegions(LevelServiceArea, 4)
	m.Options.Width = 300

	var buffer bytes.Buffer
	assert.NoError(m.Render(&buffer, RenderFormatPNG))
	assert.True(bytes.HasPrefix(buffer.Bytes(), pngSignature))

	// the greyscale ceiling applies on the subset render too
	m.Options.Qtiles = 10
	buffer.Reset()
	err := m.Render(&buffer, RenderFormatPNG)
	assert.True(IsConfigurationError(err))
	assert.Zero(buffer.Len())
}

func TestCanvasHeight(t *testing.T) {
	assert := require.New(t)

	// a degenerate bbox falls back to square
	assert.Equal(500, CanvasHeight(BBox{}, 500))

	bbox := BBox{MinX: 0, MaxX: 2, MinY: 51, MaxY: 52}
	height := CanvasHeight(bbox, 600)

	// half as tall as wide in degrees, stretched by the latitude correction
	assert.True(height > 300)
	assert.True(height < 600)
}

func TestSaveMapsCounties(t *testing.T) {
	assert := require.New(t)

	set := makeTestRegions(LevelCounty, 150)
	attachSequence(set, `response.mean`)

	dir := t.TempDir()
	basename := filepath.Join(dir, `response_mean`)

	msg, err := SaveMaps(set, MapOptions{
		Variable: `response.mean`,
		Title:    `Mean response time`,
		Qtiles:   5,
	}, basename, 320)

	assert.NoError(err)
	assert.Equal(`Save complete.`, msg)

	for _, suffix := range []string{`_counties_england.png`, `_counties_london.png`} {
		data, err := os.ReadFile(basename + suffix)
		assert.NoError(err, suffix)
		assert.True(bytes.HasPrefix(data, pngSignature), suffix)
	}

	entries, err := os.ReadDir(dir)
	assert.NoError(err)
	assert.Len(entries, 2)
}

func TestSaveMapsServices(t *testing.T) {
	assert := require.New(t)

	set := makeTestRegions(LevelServiceArea, 10)
	attachSequence(set, `response.p90`)

	dir := t.TempDir()
	basename := filepath.Join(dir, `response_p90`)

	msg, err := SaveMaps(set, MapOptions{
		Variable: `response.p90`,
		Breaks:   []float64{57, 65, 73, 83},
	}, basename, 320)

	assert.NoError(err)
	assert.Equal(SaveComplete, msg)

	entries, err := os.ReadDir(dir)
	assert.NoError(err)
	assert.Len(entries, 1)
	assert.Equal(`response_p90_services_england.png`, entries[0].Name())
}

func TestSaveMapsConfigurationErrorWritesNothing(t *testing.T) {
	assert := require.New(t)

	set := makeTestRegions(LevelCounty, 50)
	attachSequence(set, `response.mean`)

	dir := t.TempDir()

	_, err := SaveMaps(set, MapOptions{
		Variable:  `response.mean`,
		Qtiles:    10,
		Greyscale: true,
	}, filepath.Join(dir, `bad`), 320)

	assert.True(IsConfigurationError(err))

	entries, err := os.ReadDir(dir)
	assert.NoError(err)
	assert.Empty(entries)
}

func TestSaveMapsShippedBoundaries(t *testing.T) {
	assert := require.New(t)

	set := Services().Clone()
	values := make(map[string]float64)

	for i, region := range set.Regions {
		values[region.ID] = 60 + float64(i)*2.5
	}

	set.AttachVariable(`handover.median`, values)

	dir := t.TempDir()

	msg, err := SaveMaps(set, MapOptions{
		Variable: `handover.median`,
		Title:    `Median handover time`,
	}, filepath.Join(dir, `handover`), 320)

	assert.NoError(err)
	assert.Equal(SaveComplete, msg)

	data, err := os.ReadFile(filepath.Join(dir, `handover_services_england.png`))
	assert.NoError(err)
	assert.True(bytes.HasPrefix(data, pngSignature))
}
