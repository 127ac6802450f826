package riskmodel

import (
	"sync"

	"agrorisk/pkg/features"
)

// MinTrainingSamples is the floor below which Train soft-fails.
const MinTrainingSamples = 10

// Sample pairs a feature vector with an observed risk score in [0,100].
type Sample struct {
	Features []float64
	Target   float64
}

// Predictor is the trainable risk estimator. Untrained, every Predict call
// delegates to the rule-based fallback. The caller owns the instance; there
// is no package-level model state.
type Predictor struct {
	mu      sync.RWMutex
	scaler  *Standardizer
	model   *Ensemble
	trained bool
	cfg     GBTConfig
}

func New() *Predictor { return NewWithConfig(DefaultConfig) }

func NewWithConfig(cfg GBTConfig) *Predictor { return &Predictor{cfg: cfg} }

// Train fits the standardizer and the boosted ensemble on the given samples.
// Fewer than MinTrainingSamples returns false and leaves prior state intact.
func (p *Predictor) Train(samples []Sample) bool {
	if len(samples) < MinTrainingSamples {
		return false
	}

	X := make([][]float64, len(samples))
	y := make([]float64, len(samples))
	for i, s := range samples {
		X[i] = s.Features
		y[i] = s.Target
	}

	scaler := fitStandardizer(X)
	scaled := make([][]float64, len(X))
	for i := range X {
		scaled[i] = scaler.Transform(X[i])
	}
	model := fitEnsemble(scaled, y, p.cfg)

	p.mu.Lock()
	p.scaler = scaler
	p.model = model
	p.trained = true
	p.mu.Unlock()
	return true
}

func (p *Predictor) Trained() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.trained
}

// Predict returns (risk score, confidence), both in [0,100].
func (p *Predictor) Predict(v []float64) (float64, float64) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.trained {
		return RuleBasedScore(v)
	}

	score := clip(p.model.Predict(p.scaler.Transform(v)), 0, 100)
	return score, confidence(v)
}

// confidence is the heuristic for the trained path only: history and fresh
// weather raise trust, stale history lowers it. Always within [50,95].
func confidence(v []float64) float64 {
	c := 70.0
	if v[features.RecentInfestations] > 0 {
		c += 10
	}
	if v[features.AvgTemperature] > 0 {
		c += 10
	}
	if v[features.DaysSinceLast] > 180 {
		c -= 10
	}
	return clip(c, 50, 95)
}
