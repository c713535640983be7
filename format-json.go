package vanmaps

import (
	"encoding/json"
)

type JSONFormatter struct {
	Formatter
}

func (self JSONFormatter) Format(region string, value float64) string {
	if region == `` {
		return ``
	}

	if out, err := json.Marshal(map[string]interface{}{
		`region`: region,
		`value`:  value,
	}); err == nil {
		return string(out)
	}

	return ``
}
