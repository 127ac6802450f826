package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func New(
	e *echo.Echo,
	cropCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
		Get(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
	},
	pestCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
		Get(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
		Measures(echo.Context) error
	},
	weatherCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
		ImportCSV(echo.Context) error
		Analyze(echo.Context) error
		Delete(echo.Context) error
	},
	infCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
	},
	predCtrl interface {
		Generate(echo.Context) error
		Train(echo.Context) error
		List(echo.Context) error
		ExportCSV(echo.Context) error
		ExportBundle(echo.Context) error
		Report(echo.Context) error
	},
	alertCtrl interface {
		List(echo.Context) error
		UnreadCount(echo.Context) error
		Summary(echo.Context) error
		MarkRead(echo.Context) error
		Create(echo.Context) error
		Cleanup(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/crops", cropCtrl.Create)
	e.GET("/crops", cropCtrl.List)
	e.GET("/crops/:id", cropCtrl.Get)
	e.PUT("/crops/:id", cropCtrl.Update)
	e.DELETE("/crops/:id", cropCtrl.Delete)

	e.POST("/pests", pestCtrl.Create)
	e.GET("/pests", pestCtrl.List)
	e.GET("/pests/:id", pestCtrl.Get)
	e.PUT("/pests/:id", pestCtrl.Update)
	e.DELETE("/pests/:id", pestCtrl.Delete)
	e.GET("/pests/:id/measures", pestCtrl.Measures)

	e.POST("/weather", weatherCtrl.Create)
	e.GET("/weather", weatherCtrl.List)
	e.POST("/weather/import", weatherCtrl.ImportCSV)
	e.GET("/weather/analysis", weatherCtrl.Analyze)
	e.DELETE("/weather/:id", weatherCtrl.Delete)

	e.POST("/infestations", infCtrl.Create)
	e.GET("/infestations", infCtrl.List)

	e.POST("/predictions/generate", predCtrl.Generate)
	e.POST("/model/train", predCtrl.Train)
	e.GET("/predictions", predCtrl.List)
	e.GET("/predictions/export", predCtrl.ExportCSV)
	e.GET("/export/all", predCtrl.ExportBundle)
	e.GET("/reports/risk.xlsx", predCtrl.Report)

	e.GET("/alerts", alertCtrl.List)
	e.GET("/alerts/unread_count", alertCtrl.UnreadCount)
	e.GET("/alerts/summary", alertCtrl.Summary)
	e.POST("/alerts", alertCtrl.Create)
	e.PATCH("/alerts/:id/read", alertCtrl.MarkRead)
	e.DELETE("/alerts/cleanup", alertCtrl.Cleanup)

	return e
}
