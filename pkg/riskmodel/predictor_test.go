package riskmodel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrorisk/pkg/features"
)

// syntheticSamples builds a small linearly-scored training set: risk grows
// with pest severity and infestation count.
func syntheticSamples(n int) []Sample {
	out := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		v := make([]float64, features.Count)
		v[features.AvgTemperature] = 18 + float64(i%14)
		v[features.AvgHumidity] = 50 + float64((i*7)%50)
		v[features.TotalRainfall] = float64((i * 13) % 80)
		v[features.PestSeverityCode] = float64(i%4 + 1)
		v[features.RecentInfestations] = float64(i % 6)
		v[features.AvgHistoricalSeverity] = float64(i % 5)
		v[features.DaysSinceLast] = float64((i * 37) % 365)
		target := 10*v[features.PestSeverityCode] + 8*v[features.RecentInfestations] + v[features.AvgHumidity]/5
		if target > 100 {
			target = 100
		}
		out = append(out, Sample{Features: v, Target: target})
	}
	return out
}

func TestTrain_TooFewSamples(t *testing.T) {
	p := New()
	assert.False(t, p.Train(syntheticSamples(9)))
	assert.False(t, p.Trained())

	// prior trained state survives a failed retrain
	require.True(t, p.Train(syntheticSamples(40)))
	require.True(t, p.Trained())
	before, _ := p.Predict(syntheticSamples(1)[0].Features)
	assert.False(t, p.Train(syntheticSamples(5)))
	assert.True(t, p.Trained())
	after, _ := p.Predict(syntheticSamples(1)[0].Features)
	assert.Equal(t, before, after)
}

func TestPredict_UntrainedDelegatesToFallback(t *testing.T) {
	p := New()
	v := vec(map[int]float64{features.TempRisk: 1, features.PestSeverityCode: 2})
	gotScore, gotConf := p.Predict(v)
	wantScore, wantConf := RuleBasedScore(v)
	assert.Equal(t, wantScore, gotScore)
	assert.Equal(t, wantConf, gotConf)
}

func TestPredict_TrainedBounds(t *testing.T) {
	p := New()
	require.True(t, p.Train(syntheticSamples(60)))

	for _, s := range syntheticSamples(30) {
		score, conf := p.Predict(s.Features)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
		assert.GreaterOrEqual(t, conf, 50.0)
		assert.LessOrEqual(t, conf, 95.0)
	}
}

func TestPredict_TrainedConfidenceHeuristic(t *testing.T) {
	p := New()
	require.True(t, p.Train(syntheticSamples(40)))

	rich := make([]float64, features.Count)
	rich[features.RecentInfestations] = 2
	rich[features.AvgTemperature] = 25
	rich[features.DaysSinceLast] = 30
	_, conf := p.Predict(rich)
	assert.Equal(t, 90.0, conf)

	stale := make([]float64, features.Count)
	stale[features.DaysSinceLast] = 200
	_, conf = p.Predict(stale)
	assert.Equal(t, 60.0, conf)
}

func TestTrain_Deterministic(t *testing.T) {
	samples := syntheticSamples(50)
	p1, p2 := New(), New()
	require.True(t, p1.Train(samples))
	require.True(t, p2.Train(samples))

	for _, s := range syntheticSamples(20) {
		s1, _ := p1.Predict(s.Features)
		s2, _ := p2.Predict(s.Features)
		assert.Equal(t, s1, s2)
	}
}

func TestTrain_FitsSignal(t *testing.T) {
	p := New()
	require.True(t, p.Train(syntheticSamples(80)))

	low := make([]float64, features.Count)
	low[features.PestSeverityCode] = 1
	high := make([]float64, features.Count)
	high[features.PestSeverityCode] = 4
	high[features.RecentInfestations] = 5
	high[features.AvgHumidity] = 95

	lowScore, _ := p.Predict(low)
	highScore, _ := p.Predict(high)
	assert.Greater(t, highScore, lowScore)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.gob")

	p := New()
	require.True(t, p.Train(syntheticSamples(40)))
	require.NoError(t, p.Save(path))

	restored := New()
	found, err := restored.Load(path)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, restored.Trained())

	for _, s := range syntheticSamples(15) {
		want, _ := p.Predict(s.Features)
		got, _ := restored.Predict(s.Features)
		assert.Equal(t, want, got)
	}
}

func TestLoad_MissingPath(t *testing.T) {
	p := New()
	found, err := p.Load(filepath.Join(t.TempDir(), "absent.gob"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, p.Trained())

	// a trained predictor keeps its state when the path is missing
	require.True(t, p.Train(syntheticSamples(40)))
	found, err = p.Load(filepath.Join(t.TempDir(), "absent.gob"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, p.Trained())
}

func TestSave_Untrained(t *testing.T) {
	p := New()
	assert.Error(t, p.Save(filepath.Join(t.TempDir(), "model.gob")))
}

func TestTargetFromSeverity(t *testing.T) {
	assert.Equal(t, 20.0, TargetFromSeverity(1))
	assert.Equal(t, 100.0, TargetFromSeverity(5))
	assert.Equal(t, 100.0, TargetFromSeverity(9))
	assert.Equal(t, 0.0, TargetFromSeverity(0))
}
