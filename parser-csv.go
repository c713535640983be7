package vanmaps

import (
	"fmt"
	"github.com/ghetzel/go-stockutil/stringutil"
	"strings"
)

// CSVParser reads "region,value" observation lines.  The region identifier
// may be quoted so county names containing commas survive.
type CSVParser struct{}

func (self CSVParser) Parse(line string) (string, float64, error) {
	line = strings.TrimSpace(line)
	idx := strings.LastIndex(line, `,`)

	if idx <= 0 || idx == len(line)-1 {
		return ``, 0, fmt.Errorf("malformed observation %q", line)
	}

	region := strings.Trim(strings.TrimSpace(line[:idx]), `"`)

	if value, err := stringutil.ConvertToFloat(strings.TrimSpace(line[idx+1:])); err == nil {
		return region, value, nil
	} else {
		return ``, 0, err
	}
}
