package vanmaps

import (
	"fmt"
	"github.com/montanaflynn/stats"
	"math"
	"sort"
)

var DefaultQuantiles = 5

// bin-count ceilings imposed by the underlying ColorBrewer ramp families
var MaxGreyscaleBins = 9
var MaxColorBins = 11

// ComputeBreaks turns a variable column into an ordered sequence of bin
// edges.  When explicit is non-empty (and free of NaN), it is returned
// verbatim and qtiles is ignored.  Otherwise qtiles+1 edges are computed at
// the fractions i/qtiles using the type-8 order-statistic interpolation,
// skipping NaN entries in values.
func ComputeBreaks(values []float64, qtiles int, explicit []float64) ([]float64, error) {
	if len(explicit) > 0 {
		for _, edge := range explicit {
			if math.IsNaN(edge) {
				return nil, fmt.Errorf("break sequence contains missing values")
			}
		}

		if err := checkMinimumBins(len(explicit) - 1); err != nil {
			return nil, err
		}

		return explicit, nil
	}

	if qtiles <= 0 {
		qtiles = DefaultQuantiles
	}

	observed := make([]float64, 0, len(values))

	for _, v := range values {
		if !math.IsNaN(v) {
			observed = append(observed, v)
		}
	}

	if len(observed) == 0 {
		return nil, fmt.Errorf("no observed values to classify")
	}

	sort.Float64s(observed)
	edges := make([]float64, qtiles+1)

	for i := 0; i <= qtiles; i++ {
		edges[i] = quantile8(observed, float64(i)/float64(qtiles))
	}

	if err := checkMinimumBins(len(edges) - 1); err != nil {
		return nil, err
	}

	return edges, nil
}

// ValidateBinCount enforces the joint break/palette bounds: at least 2 bins
// always, at most 9 for greyscale ramps and 11 for the diverging ramp.
func ValidateBinCount(bins int, greyscale bool) error {
	if err := checkMinimumBins(bins); err != nil {
		return err
	}

	max := MaxColorBins

	if greyscale {
		max = MaxGreyscaleBins
	}

	if bins > max {
		return configError(`too many breaks`)
	}

	return nil
}

func checkMinimumBins(bins int) error {
	if bins < 2 {
		return configError(`too few breaks`)
	}

	return nil
}

// quantile8 computes the p-quantile of sorted data via linear interpolation
// of order statistics with plotting position constants a = b = 1/3 (the
// smoother distribution-free estimator; neither montanaflynn/stats nor gonum
// expose this method).
func quantile8(sorted []float64, p float64) float64 {
	n := len(sorted)

	if n == 1 {
		return sorted[0]
	}

	h := (float64(n)+1.0/3.0)*p + 1.0/3.0

	if h <= 1 {
		return sorted[0]
	}

	if h >= float64(n) {
		return sorted[n-1]
	}

	fl := math.Floor(h)
	lower := sorted[int(fl)-1]
	upper := sorted[int(fl)]

	return lower + (h-fl)*(upper-lower)
}

// binIndex locates the bin a value falls into: bins are half-open on the
// right except the last, which is closed.  Returns -1 for NaN or values
// outside the break range.
func binIndex(edges []float64, value float64) int {
	if math.IsNaN(value) {
		return -1
	}

	last := len(edges) - 1

	for i := 0; i < last; i++ {
		if value >= edges[i] && value < edges[i+1] {
			return i
		}
	}

	if value == edges[last] {
		return last - 1
	}

	return -1
}

// VariableExtent returns the observed minimum and maximum of a column,
// ignoring NaN entries.
func VariableExtent(values []float64) (float64, float64, error) {
	observed := make(stats.Float64Data, 0, len(values))

	for _, v := range values {
		if !math.IsNaN(v) {
			observed = append(observed, v)
		}
	}

	if min, err := observed.Min(); err == nil {
		if max, err := observed.Max(); err == nil {
			return min, max, nil
		} else {
			return 0, 0, err
		}
	} else {
		return 0, 0, err
	}
}
