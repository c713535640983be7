package vanmaps

import (
	"bytes"
	"fmt"
	"os"
)

// SaveComplete is returned by SaveMaps once every view has been written.
var SaveComplete = `Save complete.`

type mapView struct {
	Suffix string
	London bool
}

// SaveMaps writes one PNG per logical view of the dataset: county-level data
// produces a full-England view plus a London borough view, service-level
// data a single England view.  Image height follows from the geometry's
// aspect ratio and the requested pixel width.  Classification errors surface
// before any file is created, and each render is buffered so a failure never
// leaves a partial image on disk.
func SaveMaps(regions *RegionSet, options MapOptions, basename string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}

	views := []mapView{
		{
			Suffix: fmt.Sprintf("_%s_england.png", regions.Level),
		},
	}

	if regions.Level == LevelCounty {
		views = append(views, mapView{
			Suffix: fmt.Sprintf("_%s_london.png", regions.Level),
			London: true,
		})
	}

	for _, view := range views {
		m := NewMap(regions)
		m.Options = options
		m.Options.LondonOnly = view.London
		m.Options.Width = width
		m.Options.Height = 0

		var buffer bytes.Buffer

		if err := m.Render(&buffer, RenderFormatPNG); err != nil {
			return ``, err
		}

		if err := writeImage(basename+view.Suffix, buffer.Bytes()); err != nil {
			return ``, err
		}
	}

	return SaveComplete, nil
}

func writeImage(filename string, data []byte) error {
	file, err := os.Create(filename)

	if err != nil {
		return err
	}

	defer file.Close()

	if _, err := file.Write(data); err != nil {
		return err
	}

	return file.Close()
}
