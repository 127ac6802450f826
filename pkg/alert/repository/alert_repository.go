package repository

import (
	"time"

	"agrorisk/entities"
)

// Summary aggregates alert counts for the dashboard collaborator.
type Summary struct {
	Total      int64            `json:"total"`
	Unread     int64            `json:"unread"`
	Critical   int64            `json:"critical"`
	BySeverity map[string]int64 `json:"by_severity"`
}

type AlertRepository interface {
	// CreateDeduped inserts an automatic alert keyed on the
	// (prediction, dedup day) unique index. Returns false when an alert for
	// that prediction and day already exists; never double-inserts under
	// concurrency.
	CreateDeduped(a *entities.Alert) (bool, error)
	// Create inserts a manual alert, exempt from daily dedup.
	Create(a *entities.Alert) error
	Recent(limit int) ([]entities.Alert, error)
	Unread() ([]entities.Alert, error)
	UnreadCount() (int64, error)
	CriticalUnread() ([]entities.Alert, error)
	MarkRead(id uint) error
	Summarize() (Summary, error)
	// CleanupRead deletes read alerts created before cutoff, returning the
	// number removed.
	CleanupRead(cutoff time.Time) (int64, error)
}
