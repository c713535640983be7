package vanmaps

import (
	"fmt"
	"github.com/wcharczuk/go-chart"
	"github.com/wcharczuk/go-chart/drawing"
	"io"
	"math"
)

var DefaultDPI float64 = 72.0
var DefaultWidth = 1000

type RenderFormat string

const (
	RenderFormatPNG RenderFormat = `png`
	RenderFormatSVG              = `svg`
)

type MapOptions struct {
	Variable   string     `json:"variable"`
	Title      string     `json:"title"`
	Source     string     `json:"source"`
	Qtiles     int        `json:"qtiles"`
	Breaks     []float64  `json:"breaks,omitempty"`
	Greyscale  bool       `json:"greyscale"`
	LondonOnly bool       `json:"london_only"`
	Overlay    *RegionSet `json:"-"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	DPI        float64    `json:"dpi"`
}

// Map draws a choropleth of one variable over a boundary dataset.
type Map struct {
	Regions *RegionSet
	Options MapOptions
	Style   MapStyle
}

func NewMap(regions *RegionSet) *Map {
	return &Map{
		Regions: regions,
		Options: MapOptions{},
		Style:   DefaultStyle,
	}
}

// Classify runs the break/palette pipeline for the map's current options
// without drawing anything.  This is also the validation step Render leans
// on: a ConfigurationError here means nothing will be drawn or written.
func (self *Map) Classify() ([]float64, Palette, string, error) {
	regions := self.Regions

	if regions == nil || regions.Len() == 0 {
		return nil, nil, ``, fmt.Errorf("empty region dataset")
	}

	if self.Options.Variable == `` {
		return nil, nil, ``, fmt.Errorf("no variable given")
	}

	if !regions.HasVariable(self.Options.Variable) {
		return nil, nil, ``, fmt.Errorf("unknown variable %q", self.Options.Variable)
	}

	values := regions.Values(self.Options.Variable)

	if edges, err := ComputeBreaks(values, self.Options.Qtiles, self.Options.Breaks); err == nil {
		bins := len(edges) - 1

		if err := ValidateBinCount(bins, self.Options.Greyscale); err != nil {
			return nil, nil, ``, err
		}

		palette, background := SelectPalette(bins, self.Options.Greyscale)
		return edges, palette, background, nil
	} else {
		return nil, nil, ``, err
	}
}

func (self *Map) Render(w io.Writer, format RenderFormat) error {
	regions := self.Regions
	overlay := self.Options.Overlay

	if self.Options.LondonOnly {
		if self.Regions.Level != LevelCounty {
			return fmt.Errorf("the London view is only available for county data")
		}

		regions = self.Regions.London()

		// service outlines give the borough view its context
		if overlay == nil {
			overlay = Services()
		}
	}

	scoped := *self
	scoped.Regions = regions

	edges, palette, background, err := scoped.Classify()

	if err != nil {
		return err
	}

	var renderProvider chart.RendererProvider

	switch format {
	case RenderFormatPNG:
		renderProvider = chart.PNG
	case RenderFormatSVG:
		renderProvider = chart.SVG
	default:
		return fmt.Errorf("Unsupported format %q", format)
	}

	width := self.Options.Width

	if width <= 0 {
		width = DefaultWidth
	}

	height := self.Options.Height

	if height <= 0 {
		height = CanvasHeight(regions.BBox(), width)
	}

	r, err := renderProvider(width, height)

	if err != nil {
		return err
	}

	if v := self.Options.DPI; v > 0 {
		r.SetDPI(v)
	} else {
		r.SetDPI(DefaultDPI)
	}

	if font, err := chart.GetDefaultFont(); err == nil {
		r.SetFont(font)
	} else {
		return err
	}

	fillCanvas(r, width, height, drawing.ColorFromHex(background))

	project := newProjection(regions.BBox(), width, height, self.Style.Padding)
	border := self.Style.GetBorderStyle(regions.Level)

	binStyles := MakeRegionStyles(func(style *chart.Style) {
		style.StrokeColor = border.StrokeColor
		style.StrokeWidth = border.StrokeWidth
	}, palette...)

	for _, region := range regions.Regions {
		style := self.Style.NoData
		style.StrokeColor = border.StrokeColor
		style.StrokeWidth = border.StrokeWidth

		if idx := binIndex(edges, region.Value(self.Options.Variable)); idx >= 0 {
			style = binStyles[idx]
		}

		drawRegion(r, region.Geometry, project, style, true)
	}

	if overlay != nil {
		for _, region := range overlay.Regions {
			drawRegion(r, region.Geometry, project, self.Style.Overlay, false)
		}
	}

	self.drawLegend(r, edges, palette)
	self.drawTitle(r, width)
	self.drawSource(r, height)

	return r.Save(w)
}

// CanvasHeight derives an image height from a bounding box and a requested
// pixel width, using the same cos-corrected plate carree aspect the drawing
// projection uses so saved maps are not stretched.
func CanvasHeight(bbox BBox, width int) int {
	if bbox.Width() <= 0 || bbox.Height() <= 0 {
		return width
	}

	mid := (bbox.MinY + bbox.MaxY) / 2.0
	aspect := bbox.Height() / (bbox.Width() * math.Cos(mid*math.Pi/180.0))
	height := int(float64(width) * aspect)

	if height < 1 {
		height = 1
	}

	return height
}

func newProjection(bbox BBox, width int, height int, padding int) func([2]float64) (int, int) {
	cosMid := math.Cos((bbox.MinY + bbox.MaxY) / 2.0 * math.Pi / 180.0)
	spanX := bbox.Width() * cosMid
	spanY := bbox.Height()

	innerW := float64(width - 2*padding)
	innerH := float64(height - 2*padding)

	scale := innerW / spanX

	if s := innerH / spanY; s < scale {
		scale = s
	}

	offsetX := (innerW - spanX*scale) / 2.0
	offsetY := (innerH - spanY*scale) / 2.0

	return func(pt [2]float64) (int, int) {
		x := float64(padding) + offsetX + (pt[0]-bbox.MinX)*cosMid*scale
		y := float64(height) - float64(padding) - offsetY - (pt[1]-bbox.MinY)*scale

		return int(math.Round(x)), int(math.Round(y))
	}
}

func fillCanvas(r chart.Renderer, width int, height int, color drawing.Color) {
	r.SetFillColor(color)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()
}

func drawRegion(r chart.Renderer, geometry MultiPolygon, project func([2]float64) (int, int), style chart.Style, fill bool) {
	r.SetStrokeColor(style.StrokeColor)
	r.SetStrokeWidth(style.StrokeWidth)
	r.SetStrokeDashArray(style.StrokeDashArray)
	r.SetFillColor(style.FillColor)

	for _, polygon := range geometry {
		for _, ring := range polygon {
			if len(ring) < 3 {
				continue
			}

			x, y := project(ring[0])
			r.MoveTo(x, y)

			for _, pt := range ring[1:] {
				x, y = project(pt)
				r.LineTo(x, y)
			}

			r.Close()
		}

		if fill {
			r.FillStroke()
		} else {
			r.Stroke()
		}
	}
}

// drawLegend paints bin swatches with their edge ranges at a fixed position
// below the title block.
func (self *Map) drawLegend(r chart.Renderer, edges []float64, palette Palette) {
	if !self.Style.Legend.Show {
		return
	}

	r.SetFontSize(self.Style.Legend.FontSize)
	r.SetFontColor(self.Style.Legend.FontColor)

	swatch := self.Style.LegendSwatch
	spacing := self.Style.LegendSpacing
	x := self.Style.Padding
	y := self.Style.Padding + 2*swatch

	for i := 0; i < len(palette); i++ {
		r.SetFillColor(palette.Color(i))
		r.SetStrokeColor(self.Style.Legend.FontColor)
		r.SetStrokeWidth(0.5)
		r.SetStrokeDashArray(nil)

		r.MoveTo(x, y)
		r.LineTo(x+swatch, y)
		r.LineTo(x+swatch, y+swatch)
		r.LineTo(x, y+swatch)
		r.Close()
		r.FillStroke()

		r.Text(FormatBreakLabel(edges[i], edges[i+1]), x+swatch+spacing, y+swatch-3)

		y += swatch + spacing
	}
}

func (self *Map) drawTitle(r chart.Renderer, width int) {
	if !self.Style.Title.Show || self.Options.Title == `` {
		return
	}

	r.SetFontSize(self.Style.Title.FontSize)
	r.SetFontColor(self.Style.Title.FontColor)

	box := r.MeasureText(self.Options.Title)
	r.Text(self.Options.Title, (width-box.Width())/2, self.Style.Padding)
}

func (self *Map) drawSource(r chart.Renderer, height int) {
	if !self.Style.Source.Show || self.Options.Source == `` {
		return
	}

	r.SetFontSize(self.Style.Source.FontSize)
	r.SetFontColor(self.Style.Source.FontColor)
	r.Text(self.Options.Source, self.Style.Padding, height-self.Style.Padding/2)
}
