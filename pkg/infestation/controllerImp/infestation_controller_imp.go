package controllerImp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"agrorisk/entities"
	"agrorisk/pkg/infestation/repository"
)

type InfestationCtrl struct{ repo repository.InfestationRepository }

func New(repo repository.InfestationRepository) *InfestationCtrl { return &InfestationCtrl{repo} }

type createReq struct {
	CropID       uint    `json:"crop_id"`
	PestID       uint    `json:"pest_id"`
	Date         string  `json:"date"`
	Severity     int     `json:"severity"`
	AreaAffected float64 `json:"area_affected"`
	Notes        string  `json:"notes"`
}

func (h *InfestationCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad date, want YYYY-MM-DD"})
	}
	if req.Severity < 1 || req.Severity > 5 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "severity out of range [1,5]"})
	}
	rec := &entities.InfestationRecord{
		CropID: req.CropID, PestID: req.PestID, Date: date,
		Severity: req.Severity, AreaAffected: req.AreaAffected, Notes: req.Notes,
	}
	if err := h.repo.Create(rec); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *InfestationCtrl) List(c echo.Context) error {
	if raw := c.QueryParam("crop_id"); raw != "" {
		id, _ := strconv.Atoi(raw)
		out, err := h.repo.ListForCrop(uint(id))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, out)
	}
	out, err := h.repo.All()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
