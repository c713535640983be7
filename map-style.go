package vanmaps

import (
	"github.com/wcharczuk/go-chart"
	"github.com/wcharczuk/go-chart/drawing"
)

type MapStyle struct {
	Title         chart.Style
	Legend        chart.Style
	Source        chart.Style
	CountyBorder  chart.Style
	ServiceBorder chart.Style
	Overlay       chart.Style
	NoData        chart.Style
	Padding       int
	LegendSwatch  int
	LegendSpacing int
}

// GetBorderStyle returns the region outline style for a granularity: county
// boundaries get a hairline, service areas a heavier stroke.
func (self *MapStyle) GetBorderStyle(level GeographyLevel) chart.Style {
	if level == LevelServiceArea {
		return self.ServiceBorder
	}

	return self.CountyBorder
}

var DefaultStyle = MapStyle{
	Title: chart.Style{
		Show:      true,
		FontSize:  14,
		FontColor: drawing.ColorFromHex(`000000`),
	},
	Legend: chart.Style{
		Show:      true,
		FontSize:  9,
		FontColor: drawing.ColorFromHex(`000000`),
	},
	Source: chart.Style{
		Show:      true,
		FontSize:  7,
		FontColor: drawing.ColorFromHex(`666666`),
	},
	CountyBorder: chart.Style{
		Show:        true,
		StrokeColor: drawing.ColorFromHex(`4d4d4d`),
		StrokeWidth: 0.75,
	},
	ServiceBorder: chart.Style{
		Show:        true,
		StrokeColor: drawing.ColorFromHex(`000000`),
		StrokeWidth: 1.5,
	},
	Overlay: chart.Style{
		Show:            true,
		StrokeColor:     drawing.ColorFromHex(`1a1a1a`),
		StrokeWidth:     1.25,
		StrokeDashArray: []float64{4, 2},
	},
	NoData: chart.Style{
		Show:      true,
		FillColor: drawing.ColorFromHex(NoDataGrey),
	},
	Padding:       24,
	LegendSwatch:  14,
	LegendSpacing: 6,
}
