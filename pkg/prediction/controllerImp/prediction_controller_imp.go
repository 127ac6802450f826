package controllerImp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"agrorisk/pkg/export"
	"agrorisk/pkg/prediction/repository"
	"agrorisk/pkg/prediction/serviceImp"
)

type PredictionCtrl struct {
	repo     repository.PredictionRepository
	generate *serviceImp.GenerateSvc
	train    *serviceImp.TrainSvc
	exporter *export.Exporter
}

func New(
	repo repository.PredictionRepository,
	generate *serviceImp.GenerateSvc,
	train *serviceImp.TrainSvc,
	exporter *export.Exporter,
) *PredictionCtrl {
	return &PredictionCtrl{repo: repo, generate: generate, train: train, exporter: exporter}
}

// Generate runs a full scoring pass and returns the two created counts.
func (h *PredictionCtrl) Generate(c echo.Context) error {
	res, err := h.generate.Run()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

// Train rebuilds the model from infestation history. Not enough samples is
// still a 200: trained=false tells the caller the model was left as-is.
func (h *PredictionCtrl) Train(c echo.Context) error {
	res, err := h.train.TrainFromHistory()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

func (h *PredictionCtrl) List(c echo.Context) error {
	f := filterFromQuery(c)
	if raw := c.QueryParam("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad date, want YYYY-MM-DD"})
		}
		out, err := h.repo.ForDate(date)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, out)
	}
	out, err := h.repo.List(f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PredictionCtrl) ExportCSV(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="risk_predictions.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return h.exporter.PredictionsCSV(c.Response(), filterFromQuery(c))
}

func (h *PredictionCtrl) ExportBundle(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/zip")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="agrorisk_export.zip"`)
	c.Response().WriteHeader(http.StatusOK)
	return h.exporter.BundleZip(c.Response())
}

func (h *PredictionCtrl) Report(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="risk_report.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)
	return h.exporter.RiskReportXLSX(c.Response())
}

func filterFromQuery(c echo.Context) repository.ListFilter {
	var f repository.ListFilter
	f.RiskLevel = c.QueryParam("risk_level")
	if id, err := strconv.Atoi(c.QueryParam("crop_id")); err == nil {
		f.CropID = uint(id)
	}
	if id, err := strconv.Atoi(c.QueryParam("pest_id")); err == nil {
		f.PestID = uint(id)
	}
	return f
}
