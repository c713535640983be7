package vanmaps

// Parser decodes one observation line into a region identifier and a value.
type Parser interface {
	Parse(line string) (string, float64, error)
}

func GetParser(name string) (Parser, bool) {
	switch name {
	case `csv`:
		return CSVParser{}, true
	case `json`:
		return JSONParser{}, true
	default:
		return nil, false
	}
}
