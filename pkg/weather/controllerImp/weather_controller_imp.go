package controllerImp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"

	"agrorisk/entities"
	"agrorisk/pkg/weather/repository"
	"agrorisk/pkg/weather/serviceImp"
	"agrorisk/pkg/weatherrisk"
)

type WeatherCtrl struct {
	repo     repository.WeatherRepository
	importer *serviceImp.ImportSvc
	clock    clockwork.Clock
}

func New(repo repository.WeatherRepository, importer *serviceImp.ImportSvc, clock clockwork.Clock) *WeatherCtrl {
	return &WeatherCtrl{repo: repo, importer: importer, clock: clock}
}

type createReq struct {
	Date           string   `json:"date"`
	Location       string   `json:"location"`
	TemperatureMin *float64 `json:"temperature_min"`
	TemperatureMax *float64 `json:"temperature_max"`
	TemperatureAvg float64  `json:"temperature_avg"`
	Humidity       float64  `json:"humidity"`
	Rainfall       float64  `json:"rainfall"`
	WindSpeed      float64  `json:"wind_speed"`
}

func (h *WeatherCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad date, want YYYY-MM-DD"})
	}
	rec := &entities.WeatherRecord{
		Date: date, Location: req.Location,
		TemperatureMin: req.TemperatureMin, TemperatureMax: req.TemperatureMax,
		TemperatureAvg: req.TemperatureAvg, Humidity: req.Humidity,
		Rainfall: req.Rainfall, WindSpeed: req.WindSpeed,
	}
	if err := h.repo.Create(rec); err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *WeatherCtrl) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 50
	}
	out, err := h.repo.Latest(limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

// ImportCSV ingests a multipart upload under the "file" field. Row failures
// come back in the body; only a file-level failure is a 400.
func (h *WeatherCtrl) ImportCSV(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing file"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	defer f.Close()

	res := h.importer.ImportCSV(f)
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadRequest
	}
	return c.JSON(status, res)
}

// Analyze summarizes the recent window for a location.
func (h *WeatherCtrl) Analyze(c echo.Context) error {
	location := c.QueryParam("location")
	if location == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing location"})
	}
	days, _ := strconv.Atoi(c.QueryParam("days"))
	if days <= 0 {
		days = 7
	}

	today := entities.DateOnly(h.clock.Now())
	window, err := h.repo.Window(location, today.AddDate(0, 0, -days), today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, weatherrisk.AnalyzeWindow(window))
}

func (h *WeatherCtrl) Delete(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.repo.Delete(uint(id)); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
