package riskmodel

import "github.com/montanaflynn/stats"

// Standardizer scales features to zero mean, unit variance. It is fit once
// per Train call and reused unchanged until the next retrain.
type Standardizer struct {
	Means []float64
	Stds  []float64
}

func fitStandardizer(X [][]float64) *Standardizer {
	n := len(X[0])
	s := &Standardizer{Means: make([]float64, n), Stds: make([]float64, n)}
	col := make([]float64, len(X))
	for f := 0; f < n; f++ {
		for i := range X {
			col[i] = X[i][f]
		}
		s.Means[f], _ = stats.Mean(col)
		s.Stds[f], _ = stats.StandardDeviationPopulation(col)
		if s.Stds[f] == 0 {
			// constant feature: pass through centered only
			s.Stds[f] = 1
		}
	}
	return s
}

func (s *Standardizer) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = (x[i] - s.Means[i]) / s.Stds[i]
	}
	return out
}
