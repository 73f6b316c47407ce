package hydro

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ClassifyQuintiles ranks water years into flow quintiles 1 through 5 from a
// per-year hydrologic sample (annual mean or peak WSE). The result is a
// candidate table for curating the quintile-to-year map fed to the sequence
// generator.
func ClassifyQuintiles(annual map[int]float64) (map[int]int, error) {
	if len(annual) < 5 {
		return nil, fmt.Errorf("quintile classification needs at least 5 water years, got %v", len(annual))
	}
	values := make([]float64, 0, len(annual))
	for _, v := range annual {
		values = append(values, v)
	}
	sort.Float64s(values)
	breaks := make([]float64, 4)
	for i := range breaks {
		p := float64(i+1) / 5.0
		breaks[i] = stat.Quantile(p, stat.Empirical, values, nil)
	}
	quintiles := make(map[int]int, len(annual))
	for year, v := range annual {
		q := 1
		for _, b := range breaks {
			if v > b {
				q++
			}
		}
		quintiles[year] = q
	}
	return quintiles, nil
}
