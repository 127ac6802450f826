package serviceImp

import (
	"fmt"
	"log"

	"github.com/jonboulle/clockwork"

	"agrorisk/entities"
	"agrorisk/observability"
	croprepo "agrorisk/pkg/crop/repository"
	"agrorisk/pkg/features"
	infrepo "agrorisk/pkg/infestation/repository"
	pestrepo "agrorisk/pkg/pest/repository"
	predrepo "agrorisk/pkg/prediction/repository"
	"agrorisk/pkg/riskmodel"
	weatherrepo "agrorisk/pkg/weather/repository"
)

const (
	weatherWindowDays = 7
	historyLimit      = 10
	// suppressionScore keeps zero-signal pairs out of the table: nothing in
	// the history and nothing much in the score means no row.
	suppressionScore = 20
)

// alertGenerator is the slice of the alert service the run needs.
type alertGenerator interface {
	GenerateFromPredictions() (int, error)
}

// RunResult reports the two counts of one generation run. Updated rows are
// deliberately not counted as created.
type RunResult struct {
	PredictionsCreated int `json:"predictions_created"`
	AlertsCreated      int `json:"alerts_created"`
}

type GenerateSvc struct {
	crops   croprepo.CropRepository
	pests   pestrepo.PestRepository
	weather weatherrepo.WeatherRepository
	history infrepo.InfestationRepository
	preds   predrepo.PredictionRepository
	model   *riskmodel.Predictor
	alerts  alertGenerator
	metrics *observability.Metrics
	clock   clockwork.Clock
}

func NewGenerateService(
	crops croprepo.CropRepository,
	pests pestrepo.PestRepository,
	weather weatherrepo.WeatherRepository,
	history infrepo.InfestationRepository,
	preds predrepo.PredictionRepository,
	model *riskmodel.Predictor,
	alerts alertGenerator,
	metrics *observability.Metrics,
	clock clockwork.Clock,
) *GenerateSvc {
	return &GenerateSvc{
		crops: crops, pests: pests, weather: weather, history: history,
		preds: preds, model: model, alerts: alerts, metrics: metrics, clock: clock,
	}
}

// Run scores every crop x pest pair for today, upserts the significant ones
// and then derives alerts. Idempotent: a re-run on the same day refreshes
// scores in place and creates nothing twice.
func (s *GenerateSvc) Run() (RunResult, error) {
	start := s.clock.Now()
	s.metrics.GenerationRuns.Inc()

	res, err := s.run()
	if err != nil {
		s.metrics.GenerationFailures.Inc()
		return res, err
	}

	s.metrics.PredictionsCreated.Add(float64(res.PredictionsCreated))
	s.metrics.AlertsCreated.Add(float64(res.AlertsCreated))
	s.metrics.GenerationDuration.Observe(s.clock.Since(start).Seconds())
	log.Printf("[generate] %d predictions created, %d alerts created in %s",
		res.PredictionsCreated, res.AlertsCreated, s.clock.Since(start))
	return res, nil
}

func (s *GenerateSvc) run() (RunResult, error) {
	var res RunResult

	crops, err := s.crops.All()
	if err != nil {
		return res, fmt.Errorf("load crops: %w", err)
	}
	pests, err := s.pests.All()
	if err != nil {
		return res, fmt.Errorf("load pests: %w", err)
	}

	now := s.clock.Now()
	today := entities.DateOnly(now)

	for i := range crops {
		crop := &crops[i]
		window, err := s.weather.Window(crop.Location, today.AddDate(0, 0, -weatherWindowDays), today)
		if err != nil {
			return res, fmt.Errorf("weather window for %q: %w", crop.Location, err)
		}

		for j := range pests {
			pest := &pests[j]
			history, err := s.history.RecentForPair(crop.CropID, pest.PestID, historyLimit)
			if err != nil {
				return res, fmt.Errorf("history for crop %d pest %d: %w", crop.CropID, pest.PestID, err)
			}

			vector := features.Extract(crop, pest, window, history, now)
			score, confidence := s.model.Predict(vector)

			if score <= suppressionScore && len(history) == 0 {
				continue
			}

			created, err := s.preds.Upsert(&entities.RiskPrediction{
				CropID:              crop.CropID,
				PestID:              pest.PestID,
				PredictionDate:      today,
				RiskScore:           score,
				Confidence:          confidence,
				ContributingFactors: contributingFactors(crop, window, vector),
			})
			if err != nil {
				return res, fmt.Errorf("upsert crop %d pest %d: %w", crop.CropID, pest.PestID, err)
			}
			if created {
				res.PredictionsCreated++
			}
		}
	}

	alerts, err := s.alerts.GenerateFromPredictions()
	res.AlertsCreated = alerts
	if err != nil {
		return res, fmt.Errorf("generate alerts: %w", err)
	}
	return res, nil
}

func contributingFactors(crop *entities.Crop, window []entities.WeatherRecord, v []float64) string {
	summary := fmt.Sprintf("Weather conditions, historical patterns, crop stage: %s", crop.GrowthStage)
	if len(window) == 0 {
		summary = fmt.Sprintf("Historical patterns, crop stage: %s (no recent weather data)", crop.GrowthStage)
	}
	if v[features.RecentInfestations] > 0 {
		summary += fmt.Sprintf("; %d recent infestation(s) on record", int(v[features.RecentInfestations]))
	}
	return summary
}
