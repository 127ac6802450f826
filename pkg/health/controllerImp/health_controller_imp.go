package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agrorisk/pkg/riskmodel"
)

var appStart = time.Now()

type HealthCtrl struct {
	db    *gorm.DB
	model *riskmodel.Predictor
}

func NewHealthCtrl(db *gorm.DB, model *riskmodel.Predictor) *HealthCtrl {
	return &HealthCtrl{db: db, model: model}
}

// Health pings the database and reports whether the risk model is running
// trained or on the rule-based fallback. An untrained model is not a failure.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	dbOK := true
	dbErr := ""
	sqlDB, err := h.db.DB()
	if err != nil {
		dbOK = false
		dbErr = "db.DB(): " + err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbOK = false
		dbErr = "ping: " + err.Error()
	}

	status := http.StatusOK
	if !dbOK {
		status = http.StatusServiceUnavailable
	}

	type sub struct {
		OK  bool   `json:"ok"`
		Err string `json:"err,omitempty"`
	}

	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": dbOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": sub{OK: dbOK, Err: dbErr},
		},
		"model_trained": h.model.Trained(),
		"time":          time.Now().Format(time.RFC3339),
	})
}
