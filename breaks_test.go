package vanmaps

import (
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

func TestComputeBreaksQuantiles(t *testing.T) {
	assert := require.New(t)

	values := []float64{7, 3, 10, 1, 8, 5, 2, 9, 4, 6}

	edges, err := ComputeBreaks(values, 5, nil)
	assert.NoError(err)
	assert.Len(edges, 6)

	// type-8 interpolation over 1..10
	assert.Equal(float64(1), edges[0])
	assert.InDelta(2.4, edges[1], 1e-9)
	assert.InDelta(4.4666666667, edges[2], 1e-9)
	assert.InDelta(6.5333333333, edges[3], 1e-9)
	assert.InDelta(8.6, edges[4], 1e-9)
	assert.Equal(float64(10), edges[5])

	for i := 1; i < len(edges); i++ {
		assert.True(edges[i] >= edges[i-1])
	}
}

func TestComputeBreaksIgnoresMissing(t *testing.T) {
	assert := require.New(t)

	values := []float64{7, math.NaN(), 3, 10, 1, 8, math.NaN(), 5, 2, 9, 4, 6}

	edges, err := ComputeBreaks(values, 5, nil)
	assert.NoError(err)
	assert.Len(edges, 6)
	assert.Equal(float64(1), edges[0])
	assert.Equal(float64(10), edges[len(edges)-1])
}

func TestComputeBreaksCoversExtent(t *testing.T) {
	assert := require.New(t)

	values := []float64{42.17, 3.3, 99.1, 56.8, 12.04, 77.6, 31.5, 64.2, 8.88, 23.9}

	for _, k := range []int{2, 3, 4, 5, 8} {
		edges, err := ComputeBreaks(values, k, nil)
		assert.NoError(err)
		assert.Len(edges, k+1)

		min, max, err := VariableExtent(values)
		assert.NoError(err)
		assert.True(edges[0] <= min)
		assert.True(edges[len(edges)-1] >= max)

		for i := 1; i < len(edges); i++ {
			assert.True(edges[i] >= edges[i-1])
		}
	}
}

func TestComputeBreaksExplicitPassthrough(t *testing.T) {
	assert := require.New(t)

	explicit := []float64{57, 65, 73, 83}

	edges, err := ComputeBreaks([]float64{1, 2, 3}, 5, explicit)
	assert.NoError(err)
	assert.Equal(explicit, edges)
}

func TestComputeBreaksExplicitWithMissing(t *testing.T) {
	assert := require.New(t)

	_, err := ComputeBreaks(nil, 5, []float64{57, math.NaN(), 83})
	assert.Error(err)
}

func TestComputeBreaksTooFew(t *testing.T) {
	assert := require.New(t)

	_, err := ComputeBreaks(nil, 5, []float64{3, 3})
	assert.Error(err)
	assert.True(IsConfigurationError(err))
	assert.Equal(`too few breaks`, err.Error())
}

func TestComputeBreaksEmptyColumn(t *testing.T) {
	assert := require.New(t)

	_, err := ComputeBreaks([]float64{math.NaN(), math.NaN()}, 5, nil)
	assert.Error(err)
	assert.False(IsConfigurationError(err))
}

func TestValidateBinCountBounds(t *testing.T) {
	assert := require.New(t)

	assert.NoError(ValidateBinCount(2, true))
	assert.NoError(ValidateBinCount(2, false))

	// greyscale tops out at 9 bins
	assert.NoError(ValidateBinCount(9, true))
	err := ValidateBinCount(10, true)
	assert.Error(err)
	assert.True(IsConfigurationError(err))
	assert.Equal(`too many breaks`, err.Error())

	// the diverging family goes to 11
	assert.NoError(ValidateBinCount(10, false))
	assert.NoError(ValidateBinCount(11, false))
	err = ValidateBinCount(12, false)
	assert.Error(err)
	assert.True(IsConfigurationError(err))

	err = ValidateBinCount(1, false)
	assert.Error(err)
	assert.Equal(`too few breaks`, err.Error())
}

func TestBinIndex(t *testing.T) {
	assert := require.New(t)

	edges := []float64{0, 10, 20, 30}

	assert.Equal(0, binIndex(edges, 0))
	assert.Equal(0, binIndex(edges, 9.99))
	assert.Equal(1, binIndex(edges, 10))
	assert.Equal(2, binIndex(edges, 29))

	// last bin is closed on the right
	assert.Equal(2, binIndex(edges, 30))

	assert.Equal(-1, binIndex(edges, -0.01))
	assert.Equal(-1, binIndex(edges, 30.01))
	assert.Equal(-1, binIndex(edges, math.NaN()))
}

func TestQuantile8SmallSamples(t *testing.T) {
	assert := require.New(t)

	assert.Equal(5.0, quantile8([]float64{5}, 0.5))

	sorted := []float64{2, 4}
	assert.Equal(2.0, quantile8(sorted, 0))
	assert.InDelta(3.0, quantile8(sorted, 0.5), 1e-9)
	assert.Equal(4.0, quantile8(sorted, 1))
}
