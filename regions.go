package vanmaps

import (
	"encoding/json"
	"fmt"
	"github.com/ghetzel/go-stockutil/typeutil"
	"github.com/gobwas/glob"
	"io"
	"math"
	"sort"
)

// GeographyLevel tags a boundary dataset with the granularity it was loaded
// at.  It is assigned once at load time and carried on the RegionSet; nothing
// re-derives it from the shape of the data afterwards.
type GeographyLevel int

const (
	LevelCounty GeographyLevel = iota
	LevelServiceArea
)

func (self GeographyLevel) String() string {
	switch self {
	case LevelCounty:
		return `counties`
	case LevelServiceArea:
		return `services`
	default:
		return `unknown`
	}
}

func ParseGeographyLevel(name string) (GeographyLevel, error) {
	switch name {
	case `counties`, `county`:
		return LevelCounty, nil
	case `services`, `service`:
		return LevelServiceArea, nil
	default:
		return 0, fmt.Errorf("unknown geography level %q", name)
	}
}

type Ring [][2]float64

type Polygon []Ring

type MultiPolygon []Polygon

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func (self BBox) Width() float64 {
	return self.MaxX - self.MinX
}

func (self BBox) Height() float64 {
	return self.MaxY - self.MinY
}

// Region is one geographic record: a stable identifier (county name or
// service code), its boundary, and any variable columns attached to it.
type Region struct {
	ID       string
	Name     string
	Code     string
	InLondon bool
	Geometry MultiPolygon
	Values   map[string]float64
}

func (self *Region) Value(variable string) float64 {
	if v, ok := self.Values[variable]; ok {
		return v
	}

	return math.NaN()
}

type RegionSet struct {
	Level   GeographyLevel
	Regions []*Region
	bbox    BBox
	index   map[string]*Region
}

func NewRegionSet(level GeographyLevel) *RegionSet {
	return &RegionSet{
		Level:   level,
		Regions: make([]*Region, 0),
		index:   make(map[string]*Region),
	}
}

func (self *RegionSet) Add(region *Region) error {
	if _, ok := self.index[region.ID]; ok {
		return fmt.Errorf("duplicate region identifier %q", region.ID)
	}

	if region.Values == nil {
		region.Values = make(map[string]float64)
	}

	self.index[region.ID] = region
	self.Regions = append(self.Regions, region)
	self.growBBox(region)

	return nil
}

func (self *RegionSet) Get(id string) (*Region, bool) {
	region, ok := self.index[id]
	return region, ok
}

func (self *RegionSet) Len() int {
	return len(self.Regions)
}

func (self *RegionSet) BBox() BBox {
	return self.bbox
}

// Names returns the sorted region identifiers matching the given glob
// pattern.
func (self *RegionSet) Names(pattern string) ([]string, error) {
	if pattern == `` {
		pattern = `**`
	}

	if matcher, err := glob.Compile(pattern); err == nil {
		names := make([]string, 0)

		for _, region := range self.Regions {
			if matcher.Match(region.ID) {
				names = append(names, region.ID)
			}
		}

		sort.Strings(names)
		return names, nil
	} else {
		return nil, err
	}
}

// Values extracts a variable column in region order, with NaN standing in
// for regions the variable was never attached to.
func (self *RegionSet) Values(variable string) []float64 {
	out := make([]float64, len(self.Regions))

	for i, region := range self.Regions {
		out[i] = region.Value(variable)
	}

	return out
}

// AttachVariable sets a variable column from a region-id keyed map.
// Identifiers that do not exist in the set are ignored.
func (self *RegionSet) AttachVariable(variable string, values map[string]float64) {
	for id, value := range values {
		if region, ok := self.index[id]; ok {
			region.Values[variable] = value
		}
	}
}

func (self *RegionSet) HasVariable(variable string) bool {
	for _, region := range self.Regions {
		if _, ok := region.Values[variable]; ok {
			return true
		}
	}

	return false
}

// London returns the subset of regions flagged as in-London, as a new set at
// the same level.  The underlying Region records are shared.
func (self *RegionSet) London() *RegionSet {
	subset := NewRegionSet(self.Level)

	for _, region := range self.Regions {
		if region.InLondon {
			subset.Add(region)
		}
	}

	return subset
}

// Clone returns a deep-enough copy for attaching variables without touching
// the shipped singletons: Region records are copied, geometry is shared.
func (self *RegionSet) Clone() *RegionSet {
	out := NewRegionSet(self.Level)

	for _, region := range self.Regions {
		values := make(map[string]float64, len(region.Values))

		for k, v := range region.Values {
			values[k] = v
		}

		out.Add(&Region{
			ID:       region.ID,
			Name:     region.Name,
			Code:     region.Code,
			InLondon: region.InLondon,
			Geometry: region.Geometry,
			Values:   values,
		})
	}

	return out
}

func (self *RegionSet) growBBox(region *Region) {
	for _, polygon := range region.Geometry {
		for _, ring := range polygon {
			for _, pt := range ring {
				if len(self.index) == 1 && self.bbox == (BBox{}) {
					self.bbox = BBox{MinX: pt[0], MinY: pt[1], MaxX: pt[0], MaxY: pt[1]}
					continue
				}

				if pt[0] < self.bbox.MinX {
					self.bbox.MinX = pt[0]
				}

				if pt[1] < self.bbox.MinY {
					self.bbox.MinY = pt[1]
				}

				if pt[0] > self.bbox.MaxX {
					self.bbox.MaxX = pt[0]
				}

				if pt[1] > self.bbox.MaxY {
					self.bbox.MaxY = pt[1]
				}
			}
		}
	}
}

type geoJSONGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

type geoJSONFeature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   geoJSONGeometry        `json:"geometry"`
}

type geoJSONCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

// LoadRegions decodes a GeoJSON FeatureCollection of Polygon/MultiPolygon
// features into a RegionSet at the given level.  County features identify
// themselves with a "county" property, service features with "service";
// loading fails on duplicate identifiers.
func LoadRegions(r io.Reader, level GeographyLevel) (*RegionSet, error) {
	var collection geoJSONCollection

	if err := json.NewDecoder(r).Decode(&collection); err != nil {
		return nil, err
	}

	if collection.Type != `FeatureCollection` {
		return nil, fmt.Errorf("unsupported GeoJSON type %q", collection.Type)
	}

	set := NewRegionSet(level)

	for i, feature := range collection.Features {
		region := &Region{
			Values: make(map[string]float64),
		}

		switch level {
		case LevelCounty:
			region.ID = typeutil.V(feature.Properties[`county`]).String()
			region.Name = region.ID
			region.InLondon = typeutil.V(feature.Properties[`london`]).Bool()
		default:
			region.ID = typeutil.V(feature.Properties[`service`]).String()
			region.Name = typeutil.V(feature.Properties[`name`]).String()

			if region.Name == `` {
				region.Name = region.ID
			}
		}

		region.Code = typeutil.V(feature.Properties[`code`]).String()

		if region.ID == `` {
			return nil, fmt.Errorf("feature %d: missing %s identifier", i, level)
		}

		if geometry, err := parseGeometry(feature.Geometry); err == nil {
			region.Geometry = geometry
		} else {
			return nil, fmt.Errorf("feature %q: %v", region.ID, err)
		}

		if err := set.Add(region); err != nil {
			return nil, err
		}
	}

	if set.Len() == 0 {
		return nil, fmt.Errorf("no regions found")
	}

	return set, nil
}

func parseGeometry(geometry geoJSONGeometry) (MultiPolygon, error) {
	switch geometry.Type {
	case `Polygon`:
		var polygon Polygon

		if err := json.Unmarshal(geometry.Coordinates, &polygon); err != nil {
			return nil, err
		}

		return MultiPolygon{polygon}, nil
	case `MultiPolygon`:
		var multi MultiPolygon

		if err := json.Unmarshal(geometry.Coordinates, &multi); err != nil {
			return nil, err
		}

		return multi, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", geometry.Type)
	}
}
