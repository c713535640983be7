package vanmaps

// Formatter renders one observation as an output line.
type Formatter interface {
	Format(region string, value float64) string
}

func GetFormatter(name string) (Formatter, bool) {
	switch name {
	case `csv`:
		return CSVFormatter{}, true
	case `json`:
		return JSONFormatter{}, true
	default:
		return nil, false
	}
}
