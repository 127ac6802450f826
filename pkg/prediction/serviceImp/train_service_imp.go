package serviceImp

import (
	"fmt"
	"log"
	"sort"

	"agrorisk/entities"
	croprepo "agrorisk/pkg/crop/repository"
	"agrorisk/pkg/features"
	infrepo "agrorisk/pkg/infestation/repository"
	pestrepo "agrorisk/pkg/pest/repository"
	"agrorisk/pkg/riskmodel"
	weatherrepo "agrorisk/pkg/weather/repository"
)

// TrainResult is the soft outcome of a training run; Trained=false with a
// nil error means there was not enough history.
type TrainResult struct {
	Samples int  `json:"samples"`
	Trained bool `json:"trained"`
	Saved   bool `json:"saved"`
}

type TrainSvc struct {
	crops     croprepo.CropRepository
	pests     pestrepo.PestRepository
	weather   weatherrepo.WeatherRepository
	history   infrepo.InfestationRepository
	model     *riskmodel.Predictor
	modelPath string
}

func NewTrainService(
	crops croprepo.CropRepository,
	pests pestrepo.PestRepository,
	weather weatherrepo.WeatherRepository,
	history infrepo.InfestationRepository,
	model *riskmodel.Predictor,
	modelPath string,
) *TrainSvc {
	return &TrainSvc{crops: crops, pests: pests, weather: weather, history: history, model: model, modelPath: modelPath}
}

// TrainFromHistory builds one sample per infestation record: the features as
// they would have looked on the record's date, targeted at the observed
// severity on the 0-100 scale. On success the model is persisted.
func (s *TrainSvc) TrainFromHistory() (TrainResult, error) {
	var res TrainResult

	crops, err := s.crops.All()
	if err != nil {
		return res, fmt.Errorf("load crops: %w", err)
	}
	pests, err := s.pests.All()
	if err != nil {
		return res, fmt.Errorf("load pests: %w", err)
	}
	records, err := s.history.All()
	if err != nil {
		return res, fmt.Errorf("load history: %w", err)
	}

	cropByID := make(map[uint]*entities.Crop, len(crops))
	for i := range crops {
		cropByID[crops[i].CropID] = &crops[i]
	}
	pestByID := make(map[uint]*entities.Pest, len(pests))
	for i := range pests {
		pestByID[pests[i].PestID] = &pests[i]
	}

	// Pair-indexed history sorted oldest first, so each sample only sees
	// records that predate it.
	type pairKey struct{ crop, pest uint }
	byPair := map[pairKey][]entities.InfestationRecord{}
	for _, r := range records {
		k := pairKey{r.CropID, r.PestID}
		byPair[k] = append(byPair[k], r)
	}
	for k := range byPair {
		recs := byPair[k]
		sort.Slice(recs, func(i, j int) bool { return recs[i].Date.Before(recs[j].Date) })
		byPair[k] = recs
	}

	var samples []riskmodel.Sample
	for _, rec := range records {
		crop, okC := cropByID[rec.CropID]
		pest, okP := pestByID[rec.PestID]
		if !okC || !okP {
			continue
		}

		day := entities.DateOnly(rec.Date)
		window, err := s.weather.Window(crop.Location, day.AddDate(0, 0, -weatherWindowDays), day)
		if err != nil {
			return res, fmt.Errorf("weather window for %q: %w", crop.Location, err)
		}

		var prior []entities.InfestationRecord
		for _, h := range byPair[pairKey{rec.CropID, rec.PestID}] {
			if h.Date.Before(rec.Date) {
				prior = append(prior, h)
			}
		}
		if len(prior) > historyLimit {
			prior = prior[len(prior)-historyLimit:]
		}

		samples = append(samples, riskmodel.Sample{
			Features: features.Extract(crop, pest, window, prior, rec.Date),
			Target:   riskmodel.TargetFromSeverity(rec.Severity),
		})
	}

	res.Samples = len(samples)
	res.Trained = s.model.Train(samples)
	if !res.Trained {
		log.Printf("[train] not trained: %d samples (need %d)", len(samples), riskmodel.MinTrainingSamples)
		return res, nil
	}

	if err := s.model.Save(s.modelPath); err != nil {
		return res, fmt.Errorf("save model: %w", err)
	}
	res.Saved = true
	log.Printf("[train] trained on %d samples, saved to %s", len(samples), s.modelPath)
	return res, nil
}
