package repositoryImp

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agrorisk/entities"
	"agrorisk/pkg/alert/repository"
)

type alertRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AlertRepository { return &alertRepo{db} }

func (r *alertRepo) CreateDeduped(a *entities.Alert) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "prediction_id"}, {Name: "dedup_date"}},
		DoNothing: true,
	}).Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *alertRepo) Create(a *entities.Alert) error {
	a.DedupDate = nil
	return r.db.Create(a).Error
}

func (r *alertRepo) Recent(limit int) ([]entities.Alert, error) {
	var out []entities.Alert
	if err := r.db.Preload("Prediction").Preload("Prediction.Crop").Preload("Prediction.Pest").
		Order("created_at DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *alertRepo) Unread() ([]entities.Alert, error) {
	var out []entities.Alert
	if err := r.db.Preload("Prediction").Preload("Prediction.Crop").Preload("Prediction.Pest").
		Where("is_read = ?", false).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *alertRepo) UnreadCount() (int64, error) {
	var n int64
	err := r.db.Model(&entities.Alert{}).Where("is_read = ?", false).Count(&n).Error
	return n, err
}

func (r *alertRepo) CriticalUnread() ([]entities.Alert, error) {
	var out []entities.Alert
	if err := r.db.Preload("Prediction").Preload("Prediction.Crop").Preload("Prediction.Pest").
		Where("severity = ? AND is_read = ?", entities.AlertCritical, false).
		Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *alertRepo) MarkRead(id uint) error {
	res := r.db.Model(&entities.Alert{}).Where("alert_id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *alertRepo) Summarize() (repository.Summary, error) {
	s := repository.Summary{BySeverity: map[string]int64{}}
	if err := r.db.Model(&entities.Alert{}).Count(&s.Total).Error; err != nil {
		return s, err
	}
	if err := r.db.Model(&entities.Alert{}).Where("is_read = ?", false).Count(&s.Unread).Error; err != nil {
		return s, err
	}
	if err := r.db.Model(&entities.Alert{}).
		Where("severity = ? AND is_read = ?", entities.AlertCritical, false).
		Count(&s.Critical).Error; err != nil {
		return s, err
	}
	type sevCount struct {
		Severity string
		N        int64
	}
	var rows []sevCount
	if err := r.db.Model(&entities.Alert{}).
		Select("severity, COUNT(*) AS n").Group("severity").Scan(&rows).Error; err != nil {
		return s, err
	}
	for _, row := range rows {
		s.BySeverity[row.Severity] = row.N
	}
	return s, nil
}

func (r *alertRepo) CleanupRead(cutoff time.Time) (int64, error) {
	res := r.db.Where("is_read = ? AND created_at < ?", true, cutoff).Delete(&entities.Alert{})
	return res.RowsAffected, res.Error
}
