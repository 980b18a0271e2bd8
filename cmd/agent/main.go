package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"wellconnect/config"
	"wellconnect/database"
	"wellconnect/router"

	// Remote API
	"wellconnect/pkg/api"

	// Wells
	wellCtrlImp "wellconnect/pkg/well/controllerImp"
	wellRepoImp "wellconnect/pkg/well/repositoryImp"
	wellSvcImp "wellconnect/pkg/well/serviceImp"

	// Session
	sessCtrlImp "wellconnect/pkg/session/controllerImp"
	sessRepoImp "wellconnect/pkg/session/repositoryImp"
	sessSvcImp "wellconnect/pkg/session/serviceImp"

	// Device tokens
	tokenCtrlImp "wellconnect/pkg/token/controllerImp"
	tokenRepoImp "wellconnect/pkg/token/repositoryImp"
	tokenSvcImp "wellconnect/pkg/token/serviceImp"

	// Support + health
	healthCtrlImp "wellconnect/pkg/health/controllerImp"
	supportCtrlImp "wellconnect/pkg/support/controllerImp"

	"wellconnect/pkg/device"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) Logging
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("zap: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	slog := zap.S()

	// 3) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 4) Remote API (mock fallback, same as running the app offline)
	var client api.Client
	if cfg.APIBaseURL != "" {
		client = api.NewHTTP(cfg.APIBaseURL, cfg.RequestTimeout)
	} else {
		slog.Info("API_BASE_URL not set, using mock backend")
		client = api.NewMock()
	}

	// 5) Repos/services
	wRepo := wellRepoImp.New(db)
	wSvc := wellSvcImp.NewWellService(wRepo, client, slog)

	pRepo := sessRepoImp.New(db)
	sSvc := sessSvcImp.NewSessionService(pRepo, client, slog)

	tRepo := tokenRepoImp.New(db)
	tSvc := tokenSvcImp.NewTokenService(tRepo, client, slog)

	probe := device.NewProbe(cfg.ProbeTimeout)

	// 6) Controllers
	wCtrl := wellCtrlImp.New(wSvc, sSvc, probe)
	eCtrl := wellCtrlImp.NewEditor(wSvc, sSvc, slog, cfg.OwnerPlaceholder)
	sCtrl := sessCtrlImp.New(sSvc)
	tCtrl := tokenCtrlImp.New(tSvc, sSvc)
	supCtrl := supportCtrlImp.New(client, sSvc)
	hCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 7) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())

	// 8) Router
	r := router.New(e, wCtrl, eCtrl, sCtrl, tCtrl, supCtrl, hCtrl, sSvc)

	// 9) Start
	slog.Infof("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
