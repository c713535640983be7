package vanmaps

import (
	"fmt"
	"github.com/gobwas/glob"
	"github.com/op/go-logging"
	"github.com/tidwall/buntdb"
	"strconv"
	"strings"
	"time"
)

var log = logging.MustGetLogger(`vanmaps/store`)

// VariableStore is a buntdb-backed store of per-region observations, keyed
// by variable name.  It feeds variable columns into RegionSets at render
// time.
type VariableStore struct {
	filename string
	db       *buntdb.DB
}

func OpenStore(filename string) (*VariableStore, error) {
	out := &VariableStore{
		filename: filename,
	}

	if conn, err := buntdb.Open(out.filename); err == nil {
		out.db = conn
	} else {
		return nil, err
	}

	return out, nil
}

func (self *VariableStore) Close() error {
	return self.db.Close()
}

// GetNames lists stored variable names matching the given glob pattern
// (dot-separated, e.g. "response.*").
func (self *VariableStore) GetNames(pattern string) ([]string, error) {
	if matcher, err := glob.Compile(pattern, '.'); err == nil {
		names := make([]string, 0)

		if err := self.db.View(func(tx *buntdb.Tx) error {
			return tx.AscendKeys(`vars:*:id`, func(key, value string) bool {
				key = strings.TrimPrefix(key, `vars:`)
				key = strings.TrimSuffix(key, `:id`)

				if matcher.Match(key) {
					names = append(names, key)
				}

				return true
			})
		}); err != nil {
			return nil, err
		}

		return names, nil
	} else {
		return nil, err
	}
}

// Values returns every stored observation of a variable as a region-id
// keyed map, ready for RegionSet.AttachVariable.
func (self *VariableStore) Values(variable string) (map[string]float64, error) {
	values := make(map[string]float64)
	prefix := fmt.Sprintf("vars:%s:values:", variable)

	if err := self.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(prefix+`*`, func(key, value string) bool {
			region := key[len(prefix):]

			if val, err := strconv.ParseFloat(value, 64); err == nil {
				values[region] = val
			} else {
				log.Errorf("value parse error %s: %v", key, err)
			}

			return true
		})
	}); err != nil {
		return nil, err
	}

	return values, nil
}

// Write stores one observation, replacing any previous value for the same
// variable and region.
func (self *VariableStore) Write(variable string, region string, value float64) error {
	if variable == `` || region == `` {
		return fmt.Errorf("variable and region must not be empty")
	}

	return self.db.Update(func(tx *buntdb.Tx) error {
		idKey := fmt.Sprintf("vars:%s:id", variable)
		valueKey := fmt.Sprintf("vars:%s:values:%s", variable, region)

		if _, _, err := tx.Set(idKey, variable, nil); err == nil {
			if _, _, err := tx.Set(valueKey, fmt.Sprintf("%g", value), nil); err == nil {
				return nil
			} else {
				return err
			}
		} else {
			return err
		}
	})
}

// Remove deletes the variables matching any of the given patterns, returning
// how many variables were removed.
func (self *VariableStore) Remove(patterns ...string) (int, error) {
	removed := 0

	for _, pattern := range patterns {
		if names, err := self.GetNames(pattern); err == nil {
			for _, name := range names {
				if err := self.removeVariable(name); err != nil {
					return removed, err
				}

				removed += 1
			}
		} else {
			return removed, err
		}
	}

	return removed, nil
}

// Apply attaches every observation of a variable to the given set.
func (self *VariableStore) Apply(set *RegionSet, variable string) error {
	if values, err := self.Values(variable); err == nil {
		if len(values) == 0 {
			return fmt.Errorf("unknown variable %q", variable)
		}

		set.AttachVariable(variable, values)
		return nil
	} else {
		return err
	}
}

func (self *VariableStore) removeVariable(variable string) error {
	return self.db.Update(func(tx *buntdb.Tx) error {
		prefix := fmt.Sprintf("vars:%s:values:", variable)
		doomed := make([]string, 0)

		if err := tx.AscendKeys(prefix+`*`, func(key, value string) bool {
			doomed = append(doomed, key)
			return true
		}); err != nil {
			return err
		}

		doomed = append(doomed, fmt.Sprintf("vars:%s:id", variable))

		for _, key := range doomed {
			if _, err := tx.Delete(key); err != nil && err != buntdb.ErrNotFound {
				return err
			}
		}

		return nil
	})
}

// Shrink compacts the underlying file.
func (self *VariableStore) Shrink() error {
	started := time.Now()

	if err := self.db.Shrink(); err == nil {
		log.Debugf("store compacted in %v", time.Since(started))
		return nil
	} else if err == buntdb.ErrShrinkInProcess {
		return nil
	} else {
		return err
	}
}
