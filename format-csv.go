package vanmaps

import (
	"fmt"
	"strconv"
	"strings"
)

type CSVFormatter struct {
	Formatter
}

func (self CSVFormatter) Format(region string, value float64) string {
	if region == `` {
		return ``
	}

	if strings.Contains(region, `,`) {
		region = `"` + region + `"`
	}

	return fmt.Sprintf("%s,%s", region, strconv.FormatFloat(value, 'f', -1, 64))
}
