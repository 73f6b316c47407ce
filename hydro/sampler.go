package hydro

import (
	"math/rand"

	"github.com/HydrologicEngineeringCenter/go-statistics/statistics"
	"github.com/usace/veg-processor/utils"
)

// QuintileSampler draws synthetic quintile sequences for scenario
// exploration when no externally supplied sequence exists. Sampling is
// uniform over quintiles 1-5 unless a weighted distribution is provided.
type QuintileSampler struct {
	uniform  statistics.UniformDistribution
	weighted *utils.DiscreteEmpiricalDistribution
}

func InitQuintileSampler() QuintileSampler {
	return QuintileSampler{uniform: statistics.UniformDistribution{Min: 1, Max: 6}}
}

func InitWeightedQuintileSampler(dist utils.DiscreteEmpiricalDistribution) QuintileSampler {
	return QuintileSampler{
		uniform:  statistics.UniformDistribution{Min: 1, Max: 6},
		weighted: &dist,
	}
}

// SampleSequence produces n consecutive target entries starting at the given
// water year. Deterministic for a given seed.
func (qs QuintileSampler) SampleSequence(startWaterYear int, n int, seed int64) []TargetEntry {
	r := rand.New(rand.NewSource(seed))
	entries := make([]TargetEntry, 0, n)
	for i := 0; i < n; i++ {
		var q int
		if qs.weighted != nil {
			q = qs.weighted.Sample(r.Float64())
		} else {
			q = int(qs.uniform.InvCDF(r.Float64()))
			if q > 5 {
				q = 5
			}
		}
		entries = append(entries, TargetEntry{WaterYear: startWaterYear + i, Quintile: q})
	}
	return entries
}
