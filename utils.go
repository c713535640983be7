package vanmaps

import (
	"fmt"
	"github.com/ghetzel/go-stockutil/mathutil"
	"github.com/ghetzel/go-stockutil/stringutil"
	"strings"
)

// FormatBreakLabel renders a legend entry for one bin, with both edges
// rounded to 2 decimal places.
func FormatBreakLabel(lower float64, upper float64) string {
	return fmt.Sprintf("%v - %v", mathutil.RoundPlaces(lower, 2), mathutil.RoundPlaces(upper, 2))
}

// ParseBreakList parses a comma-separated list of numeric break edges, as
// accepted on the command line and in query strings.
func ParseBreakList(value string) ([]float64, error) {
	if value == `` {
		return nil, nil
	}

	parts := strings.Split(value, `,`)
	edges := make([]float64, len(parts))

	for i, part := range parts {
		if v, err := stringutil.ConvertToFloat(strings.TrimSpace(part)); err == nil {
			edges[i] = v
		} else {
			return nil, fmt.Errorf("invalid break %q: %v", part, err)
		}
	}

	return edges, nil
}
