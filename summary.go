package vanmaps

import (
	"github.com/montanaflynn/stats"
	"math"
)

type statsUnary func(stats.Float64Data) (float64, error)
type ReducerFunc func(values ...float64) float64

// wraps a unary function from the stats package in our ReducerFunc
func statsFn(fn statsUnary) ReducerFunc {
	return func(values ...float64) float64 {
		if result, err := fn(stats.Float64Data(values)); err == nil {
			return result
		} else {
			return math.NaN()
		}
	}
}

var Count = func(values ...float64) float64 {
	return float64(len(values))
}

var InterQuartileRange = statsFn(stats.InterQuartileRange)
var Maximum = statsFn(stats.Max)
var Mean = statsFn(stats.Mean)
var Median = statsFn(stats.Median)
var Minimum = statsFn(stats.Min)
var StandardDeviation = statsFn(stats.StandardDeviation)
var Sum = statsFn(stats.Sum)

// aliases, because typing gets annoying sometimes
var IQR = InterQuartileRange
var StdDev = StandardDeviation

var reducerNameMap = map[string]ReducerFunc{
	`count`:                Count,
	`inter-quartile-range`: InterQuartileRange,
	`maximum`:              Maximum,
	`mean`:                 Mean,
	`median`:               Median,
	`minimum`:              Minimum,
	`standard-deviation`:   StandardDeviation,
	`sum`:                  Sum,
}

var reducerAliasMap = map[string]string{
	`iqr`:     `inter-quartile-range`,
	`max`:     `maximum`,
	`avg`:     `mean`,
	`average`: `mean`,
	`min`:     `minimum`,
	`stddev`:  `standard-deviation`,
}

func GetReducer(name string) (ReducerFunc, bool) {
	if reducer, ok := reducerNameMap[GetReducerName(name)]; ok {
		return reducer, true
	}

	return nil, false
}

func GetReducerName(aliasOrName string) string {
	if _, ok := reducerNameMap[aliasOrName]; ok {
		return aliasOrName
	} else if alias, ok := reducerAliasMap[aliasOrName]; ok {
		if _, ok := reducerNameMap[alias]; ok {
			return alias
		}
	}

	return ``
}

// SummarizeVariable applies each reducer to the observed (non-NaN) values of
// a variable column across the set's regions.
func SummarizeVariable(set *RegionSet, variable string, reducers ...ReducerFunc) []float64 {
	observed := make([]float64, 0, set.Len())

	for _, value := range set.Values(variable) {
		if !math.IsNaN(value) {
			observed = append(observed, value)
		}
	}

	output := make([]float64, len(reducers))

	for i, reducer := range reducers {
		output[i] = reducer(observed...)
	}

	return output
}
