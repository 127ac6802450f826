package controllerImp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"agrorisk/entities"
	"agrorisk/pkg/crop/repository"
)

type CropCtrl struct{ repo repository.CropRepository }

func New(repo repository.CropRepository) *CropCtrl { return &CropCtrl{repo} }

type createReq struct {
	Name         string  `json:"name"`
	CropType     string  `json:"crop_type"`
	GrowthStage  string  `json:"growth_stage"`
	PlantingDate string  `json:"planting_date"`
	Location     string  `json:"location"`
	AreaHectares float64 `json:"area_hectares"`
}

func (h *CropCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	pd, _ := time.Parse("2006-01-02", req.PlantingDate)
	crop := &entities.Crop{
		Name: req.Name, CropType: req.CropType, GrowthStage: req.GrowthStage,
		PlantingDate: pd, Location: req.Location, AreaHectares: req.AreaHectares,
	}
	if err := h.repo.Create(crop); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, crop)
}

func (h *CropCtrl) List(c echo.Context) error {
	out, err := h.repo.All()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CropCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	crop, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, crop)
}

func (h *CropCtrl) Update(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	crop, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}

	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	crop.Name = req.Name
	crop.CropType = req.CropType
	crop.GrowthStage = req.GrowthStage
	crop.Location = req.Location
	crop.AreaHectares = req.AreaHectares
	if pd, err := time.Parse("2006-01-02", req.PlantingDate); err == nil {
		crop.PlantingDate = pd
	}
	if err := h.repo.Update(crop); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, crop)
}

func (h *CropCtrl) Delete(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.repo.Delete(uint(id)); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
