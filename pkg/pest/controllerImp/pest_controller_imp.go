package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agrorisk/entities"
	"agrorisk/pkg/pest/repository"
)

type PestCtrl struct{ repo repository.PestRepository }

func New(repo repository.PestRepository) *PestCtrl { return &PestCtrl{repo} }

type createReq struct {
	Name          string `json:"name"`
	PestType      string `json:"pest_type"`
	Description   string `json:"description"`
	SeverityLevel string `json:"severity_level"`
}

func (h *PestCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	pest := &entities.Pest{
		Name: req.Name, PestType: req.PestType,
		Description: req.Description, SeverityLevel: req.SeverityLevel,
	}
	if err := h.repo.Create(pest); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, pest)
}

func (h *PestCtrl) List(c echo.Context) error {
	out, err := h.repo.All()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PestCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	pest, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, pest)
}

func (h *PestCtrl) Update(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	pest, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}

	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	pest.Name = req.Name
	pest.PestType = req.PestType
	pest.Description = req.Description
	pest.SeverityLevel = req.SeverityLevel
	if err := h.repo.Update(pest); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, pest)
}

func (h *PestCtrl) Delete(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.repo.Delete(uint(id)); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// Measures lists preventive measures for display, most effective first.
func (h *PestCtrl) Measures(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	out, err := h.repo.MeasuresFor(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
