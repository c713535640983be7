package vanmaps

import (
	"bytes"
	_ "embed"
	"sync"
)

// Simplified boundary geometry shipped with the package: English ceremonial
// counties plus the London boroughs (flagged in-London), and the ten English
// ambulance service areas.

//go:embed data/counties.geojson
var countiesGeoJSON []byte

//go:embed data/services.geojson
var servicesGeoJSON []byte

var loadShipped sync.Once
var shippedCounties *RegionSet
var shippedServices *RegionSet

func loadShippedData() {
	loadShipped.Do(func() {
		if set, err := LoadRegions(bytes.NewReader(countiesGeoJSON), LevelCounty); err == nil {
			shippedCounties = set
		} else {
			panic("vanmaps: embedded county boundaries: " + err.Error())
		}

		if set, err := LoadRegions(bytes.NewReader(servicesGeoJSON), LevelServiceArea); err == nil {
			shippedServices = set
		} else {
			panic("vanmaps: embedded service boundaries: " + err.Error())
		}
	})
}

// Counties returns the shipped county boundary collection.  The returned set
// is shared and read-only; Clone it before attaching variables.
func Counties() *RegionSet {
	loadShippedData()
	return shippedCounties
}

// Services returns the shipped ambulance-service boundary collection, shared
// and read-only like Counties.
func Services() *RegionSet {
	loadShippedData()
	return shippedServices
}

// ShippedRegions returns the shipped collection for a level.
func ShippedRegions(level GeographyLevel) *RegionSet {
	if level == LevelCounty {
		return Counties()
	}

	return Services()
}
