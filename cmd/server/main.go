package main

import (
	"log"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"

	"agrorisk/config"
	"agrorisk/database"
	"agrorisk/observability"
	"agrorisk/pkg/export"
	"agrorisk/pkg/riskmodel"
	"agrorisk/router"

	// Alert
	alertCtrlImp "agrorisk/pkg/alert/controllerImp"
	alertRepoImp "agrorisk/pkg/alert/repositoryImp"
	alertSvcImp "agrorisk/pkg/alert/serviceImp"

	// Crop
	cropCtrlImp "agrorisk/pkg/crop/controllerImp"
	cropRepoImp "agrorisk/pkg/crop/repositoryImp"

	// Pest
	pestCtrlImp "agrorisk/pkg/pest/controllerImp"
	pestRepoImp "agrorisk/pkg/pest/repositoryImp"

	// Weather
	weatherCtrlImp "agrorisk/pkg/weather/controllerImp"
	weatherRepoImp "agrorisk/pkg/weather/repositoryImp"
	weatherSvcImp "agrorisk/pkg/weather/serviceImp"

	// Infestation history
	infCtrlImp "agrorisk/pkg/infestation/controllerImp"
	infRepoImp "agrorisk/pkg/infestation/repositoryImp"

	// Prediction engine
	predCtrlImp "agrorisk/pkg/prediction/controllerImp"
	predRepoImp "agrorisk/pkg/prediction/repositoryImp"
	predSvcImp "agrorisk/pkg/prediction/serviceImp"

	// Health
	healthCtrlImp "agrorisk/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()
	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		time.Local = loc
	} else {
		log.Printf("WARN: timezone %q: %v", cfg.Timezone, err)
	}

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Metrics + clock
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	// 4) Risk model: load a previously trained one if present, otherwise the
	// engine runs on the rule-based fallback until trained.
	model := riskmodel.New()
	if loaded, err := model.Load(cfg.ModelPath); err != nil {
		log.Printf("WARN: load model %s: %v", cfg.ModelPath, err)
	} else if loaded {
		log.Printf("[model] loaded trained model from %s", cfg.ModelPath)
	}

	// 5) Repos
	cropRepo := cropRepoImp.New(db)
	pestRepo := pestRepoImp.New(db)
	weatherRepo := weatherRepoImp.New(db)
	infRepo := infRepoImp.New(db)
	predRepo := predRepoImp.New(db)
	alertRepo := alertRepoImp.New(db)

	// 6) Services
	alertSvc := alertSvcImp.NewAlertService(predRepo, alertRepo, clock)
	generateSvc := predSvcImp.NewGenerateService(
		cropRepo, pestRepo, weatherRepo, infRepo, predRepo,
		model, alertSvc, metrics, clock,
	)
	trainSvc := predSvcImp.NewTrainService(cropRepo, pestRepo, weatherRepo, infRepo, model, cfg.ModelPath)
	importSvc := weatherSvcImp.NewImportService(weatherRepo, metrics)
	exporter := export.New(predRepo, cropRepo, pestRepo, weatherRepo, alertRepo)

	// 7) Controllers
	cropCtrl := cropCtrlImp.New(cropRepo)
	pestCtrl := pestCtrlImp.New(pestRepo)
	weatherCtrl := weatherCtrlImp.New(weatherRepo, importSvc, clock)
	infCtrl := infCtrlImp.New(infRepo)
	predCtrl := predCtrlImp.New(predRepo, generateSvc, trainSvc, exporter)
	alertCtrl := alertCtrlImp.New(alertRepo, alertSvc)
	healthCtrl := healthCtrlImp.NewHealthCtrl(db, model)

	// 8) Echo + router
	e := echo.New()
	e.Use(echoMiddleware.Recover())
	r := router.New(e, cropCtrl, pestCtrl, weatherCtrl, infCtrl, predCtrl, alertCtrl, healthCtrl)

	// 9) Scheduled generation (optional)
	if cfg.GenerateCron != "" {
		c := cron.New()
		if _, err := c.AddFunc(cfg.GenerateCron, func() {
			if _, err := generateSvc.Run(); err != nil {
				log.Printf("[cron] generation failed: %v", err)
			}
		}); err != nil {
			log.Fatalf("bad GENERATE_CRON %q: %v", cfg.GenerateCron, err)
		}
		c.Start()
		log.Printf("[cron] generation scheduled: %s", cfg.GenerateCron)
	}

	// 10) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
