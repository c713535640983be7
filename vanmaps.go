package vanmaps

import (
	"github.com/ghetzel/go-stockutil/pathutil"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

var Database *VariableStore

// Initialize opens (creating if necessary) the package-wide variable store
// under the given directory.  The shipped boundary datasets need no
// initialization; they are embedded and load on first use.
func Initialize(datadir string) error {
	if expandedDataDir, err := pathutil.ExpandUser(datadir); err == nil {
		// autocreate parent directory
		if _, err := os.Stat(expandedDataDir); os.IsNotExist(err) {
			if err := os.MkdirAll(expandedDataDir, 0755); err != nil {
				return err
			}
		}

		if store, err := OpenStore(filepath.Join(expandedDataDir, `variables.db`)); err == nil {
			Database = store
		} else {
			return err
		}
	} else {
		return err
	}

	return nil
}

func CreateServer(urlPrefix string) http.Handler {
	return http.StripPrefix(urlPrefix, NewServer(Database))
}

func IsEnabled() bool {
	if Database == nil {
		return false
	}

	return true
}

func Cleanup() {
	if Database != nil {
		Database.Close()
		Database = nil
	}
}

// SetValue stores one observation in the package-wide store.
func SetValue(variable string, region string, value float64) {
	if Database != nil {
		if err := Database.Write(variable, region, value); err != nil {
			log.Errorf("store write failed: %v", err)
		}
	}
}

// RenderVariable draws a stored variable over the shipped boundaries for a
// level, honoring the remaining options as given.
func RenderVariable(level GeographyLevel, variable string, w io.Writer, format RenderFormat, options MapOptions) error {
	if set, err := storedRegions(level, variable); err == nil {
		m := NewMap(set)
		m.Options = options
		m.Options.Variable = variable

		return m.Render(w, format)
	} else {
		return err
	}
}

// SaveVariable writes the per-view image files for a stored variable over
// the shipped boundaries for a level.
func SaveVariable(level GeographyLevel, variable string, options MapOptions, basename string, width int) (string, error) {
	if set, err := storedRegions(level, variable); err == nil {
		options.Variable = variable
		return SaveMaps(set, options, basename, width)
	} else {
		return ``, err
	}
}

func storedRegions(level GeographyLevel, variable string) (*RegionSet, error) {
	set := ShippedRegions(level).Clone()

	if Database != nil {
		if err := Database.Apply(set, variable); err != nil {
			return nil, err
		}
	}

	return set, nil
}
