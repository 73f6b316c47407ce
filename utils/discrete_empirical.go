package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// DiscreteEmpiricalDistribution samples integer bins from a cumulative
// probability table, used to draw flow quintiles under a weighted climate
// scenario.
type DiscreteEmpiricalDistribution struct {
	binStarts             []int
	cumulativeProbability []float64
}

func NewDiscreteEmpiricalDistribution(binStarts []int, cumulativeProbs []float64) (DiscreteEmpiricalDistribution, error) {
	if len(binStarts) != len(cumulativeProbs) {
		return DiscreteEmpiricalDistribution{}, fmt.Errorf("bin starts (%v) and cumulative probabilities (%v) must match in length", len(binStarts), len(cumulativeProbs))
	}
	if len(binStarts) == 0 {
		return DiscreteEmpiricalDistribution{}, fmt.Errorf("empty distribution")
	}
	return DiscreteEmpiricalDistribution{binStarts: binStarts, cumulativeProbability: cumulativeProbs}, nil
}

// DiscreteEmpiricalDistributionFromBytes parses a two column csv of bin
// start and cumulative probability with a header row.
func DiscreteEmpiricalDistributionFromBytes(data []byte) (DiscreteEmpiricalDistribution, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	starts := make([]int, 0)
	probs := make([]float64, 0)
	for i, line := range lines {
		if i == 0 || len(line) == 0 {
			continue
		}
		vals := strings.Split(line, ",")
		if len(vals) < 2 {
			return DiscreteEmpiricalDistribution{}, fmt.Errorf("distribution row %v has %v columns, expected 2", i, len(vals))
		}
		binStart, err := strconv.Atoi(strings.TrimSpace(vals[0]))
		if err != nil {
			return DiscreteEmpiricalDistribution{}, fmt.Errorf("distribution row %v: bad bin start %q", i, vals[0])
		}
		prob, err := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err != nil {
			return DiscreteEmpiricalDistribution{}, fmt.Errorf("distribution row %v: bad probability %q", i, vals[1])
		}
		starts = append(starts, binStart)
		probs = append(probs, prob)
	}
	return NewDiscreteEmpiricalDistribution(starts, probs)
}

func (ded DiscreteEmpiricalDistribution) Sample(probability float64) int {
	if ded.cumulativeProbability[0] < probability {
		for i, p := range ded.cumulativeProbability {
			if p >= probability {
				return ded.binStarts[i]
			}
		}
	} else {
		return ded.binStarts[0]
	}
	return ded.binStarts[len(ded.binStarts)-1]
}
