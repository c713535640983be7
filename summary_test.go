package vanmaps

import (
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestGetReducer(t *testing.T) {
	assert := require.New(t)

	for _, name := range []string{`count`, `mean`, `median`, `minimum`, `maximum`, `sum`, `standard-deviation`, `inter-quartile-range`} {
		_, ok := GetReducer(name)
		assert.True(ok, name)
	}

	for alias, name := range map[string]string{
		`avg`:    `mean`,
		`min`:    `minimum`,
		`max`:    `maximum`,
		`stddev`: `standard-deviation`,
		`iqr`:    `inter-quartile-range`,
	} {
		assert.Equal(name, GetReducerName(alias))

		_, ok := GetReducer(alias)
		assert.True(ok, alias)
	}

	_, ok := GetReducer(`mode`)
	assert.False(ok)
	assert.Equal(``, GetReducerName(`mode`))
}

func TestSummarizeVariable(t *testing.T) {
	assert := require.New(t)

	set, err := LoadRegions(strings.NewReader(testCountiesGeoJSON), LevelCounty)
	assert.NoError(err)

	// Croydon left unset; summaries only see observed values
	set.AttachVariable(`response.mean`, map[string]float64{
		`Kent`:    8,
		`Bromley`: 6,
	})

	summary := SummarizeVariable(set, `response.mean`, Count, Mean, Minimum, Maximum, Sum)
	assert.Len(summary, 5)
	assert.Equal(float64(2), summary[0])
	assert.Equal(float64(7), summary[1])
	assert.Equal(float64(6), summary[2])
	assert.Equal(float64(8), summary[3])
	assert.Equal(float64(14), summary[4])
}
