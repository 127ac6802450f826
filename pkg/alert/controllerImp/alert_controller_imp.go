package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agrorisk/entities"
	"agrorisk/pkg/alert/repository"
	"agrorisk/pkg/alert/serviceImp"
)

type AlertCtrl struct {
	repo repository.AlertRepository
	svc  *serviceImp.AlertSvc
}

func New(repo repository.AlertRepository, svc *serviceImp.AlertSvc) *AlertCtrl {
	return &AlertCtrl{repo: repo, svc: svc}
}

func (h *AlertCtrl) List(c echo.Context) error {
	if c.QueryParam("critical") == "true" {
		out, err := h.repo.CriticalUnread()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, out)
	}
	if c.QueryParam("unread") == "true" {
		out, err := h.repo.Unread()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, out)
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 50
	}
	out, err := h.repo.Recent(limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

// UnreadCount backs the notification badge polled by the dashboard.
func (h *AlertCtrl) UnreadCount(c echo.Context) error {
	n, err := h.repo.UnreadCount()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]int64{"unread": n})
}

func (h *AlertCtrl) Summary(c echo.Context) error {
	s, err := h.repo.Summarize()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, s)
}

func (h *AlertCtrl) MarkRead(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.repo.MarkRead(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]bool{"read": true})
}

type createReq struct {
	PredictionID uint   `json:"prediction_id"`
	Severity     string `json:"severity"`
	Message      string `json:"message"`
}

// Create makes a manual alert, outside the generator's daily dedup.
func (h *AlertCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	switch req.Severity {
	case entities.AlertInfo, entities.AlertWarning, entities.AlertDanger, entities.AlertCritical:
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown severity"})
	}
	a, err := h.svc.CreateCustom(req.PredictionID, req.Severity, req.Message)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, a)
}

// Cleanup deletes read alerts older than ?days (default 30).
func (h *AlertCtrl) Cleanup(c echo.Context) error {
	days, _ := strconv.Atoi(c.QueryParam("days"))
	if days <= 0 {
		days = 30
	}
	n, err := h.svc.CleanupOld(days)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]int64{"deleted": n})
}
