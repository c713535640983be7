package vanmaps

import (
	"encoding/json"
	"fmt"
)

// JSONParser reads {"region": ..., "value": ...} observation lines.
type JSONParser struct{}

type jsonObservation struct {
	Region string   `json:"region"`
	Value  *float64 `json:"value"`
}

func (self JSONParser) Parse(line string) (string, float64, error) {
	var obs jsonObservation

	if err := json.Unmarshal([]byte(line), &obs); err != nil {
		return ``, 0, err
	}

	if obs.Region == `` || obs.Value == nil {
		return ``, 0, fmt.Errorf("observation must include region and value")
	}

	return obs.Region, *obs.Value, nil
}
