package serviceImp

import (
	"fmt"

	"github.com/jonboulle/clockwork"

	"agrorisk/entities"
	alertrepo "agrorisk/pkg/alert/repository"
	predrepo "agrorisk/pkg/prediction/repository"
)

type AlertSvc struct {
	preds  predrepo.PredictionRepository
	alerts alertrepo.AlertRepository
	clock  clockwork.Clock
}

func NewAlertService(preds predrepo.PredictionRepository, alerts alertrepo.AlertRepository, clock clockwork.Clock) *AlertSvc {
	return &AlertSvc{preds: preds, alerts: alerts, clock: clock}
}

// SeverityFor maps a HIGH-level risk score to an alert tier. Scores below 67
// never reach this function through the generator.
func SeverityFor(score float64) string {
	switch {
	case score >= 80:
		return entities.AlertCritical
	case score >= 70:
		return entities.AlertDanger
	default:
		return entities.AlertWarning
	}
}

// GenerateFromPredictions creates one alert per high-risk prediction per day.
// Re-running on the same day is a no-op for already-alerted predictions; the
// dedup is the conditional insert in the repository, not a lookup.
func (s *AlertSvc) GenerateFromPredictions() (int, error) {
	today := entities.DateOnly(s.clock.Now())
	preds, err := s.preds.HighRiskForDate(today)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, p := range preds {
		day := today
		a := &entities.Alert{
			PredictionID: p.PredictionID,
			DedupDate:    &day,
			Severity:     SeverityFor(p.RiskScore),
			Message: fmt.Sprintf(
				"High risk of %s outbreak detected on %s. Risk score: %.1f%%. Immediate preventive action recommended.",
				p.Pest.Name, p.Crop.Name, p.RiskScore),
		}
		inserted, err := s.alerts.CreateDeduped(a)
		if err != nil {
			return created, err
		}
		if inserted {
			created++
		}
	}
	return created, nil
}

// CreateCustom makes a manual alert, exempt from the per-day dedup.
func (s *AlertSvc) CreateCustom(predictionID uint, severity, message string) (*entities.Alert, error) {
	a := &entities.Alert{PredictionID: predictionID, Severity: severity, Message: message}
	if err := s.alerts.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

// CleanupOld deletes read alerts older than the given number of days.
func (s *AlertSvc) CleanupOld(days int) (int64, error) {
	cutoff := s.clock.Now().AddDate(0, 0, -days)
	return s.alerts.CleanupRead(cutoff)
}
