package router

import (
	"github.com/labstack/echo/v4"

	"wellconnect/pkg/middleware"
	sessionSvc "wellconnect/pkg/session/service"
	wellCtrl "wellconnect/pkg/well/controller"
)

func New(
	e *echo.Echo,
	wells wellCtrl.WellController,
	ed wellCtrl.EditorController,
	sessCtrl interface {
		Login(echo.Context) error
		Register(echo.Context) error
		Logout(echo.Context) error
		DeleteAccount(echo.Context) error
		Profile(echo.Context) error
		UpdateProfile(echo.Context) error
		UpdateWaterNeeds(echo.Context) error
		Validate(echo.Context) error
	},
	tokenCtrl interface {
		Register(echo.Context) error
		Unregister(echo.Context) error
		List(echo.Context) error
	},
	supportCtrl interface {
		BugReport(echo.Context) error
		Weather(echo.Context) error
		Nearby(echo.Context) error
		ServerStatus(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
	sess sessionSvc.SessionService,
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	// session
	e.POST("/session/login", sessCtrl.Login)
	e.POST("/session/register", sessCtrl.Register)
	e.POST("/session/logout", sessCtrl.Logout)
	e.DELETE("/session/account", sessCtrl.DeleteAccount)
	e.GET("/session/profile", sessCtrl.Profile)
	e.PUT("/session/profile", sessCtrl.UpdateProfile)
	e.PUT("/session/water-needs", sessCtrl.UpdateWaterNeeds)
	e.GET("/session/validate", sessCtrl.Validate)

	// wells: local store is usable logged out, remote-backed routes are not
	e.GET("/wells", wells.List)
	e.GET("/wells/:id", wells.Get)
	e.POST("/wells", wells.Save)
	e.DELETE("/wells/:id", wells.Delete)
	e.POST("/wells/swap", wells.Swap)
	e.GET("/wells/:id/probe", wells.Probe)
	e.GET("/wells/export", wells.Export)

	remote := e.Group("", middleware.RequireLogin(sess))
	remote.GET("/wells/filter", wells.Filter)
	remote.GET("/wells/:id/refresh", wells.Refresh)
	remote.GET("/wells/:id/stats", wells.Stats)

	// editor sessions
	g := e.Group("/editor")
	g.POST("/:id/open", ed.Open)
	g.GET("/:id", ed.State)
	g.POST("/:id/event", ed.Event)
	g.POST("/:id/save", ed.Save)
	g.POST("/:id/discard", ed.Discard)
	g.POST("/:id/close", ed.Close)
	g.POST("/:id/resolve", ed.Resolve)

	// device tokens
	e.POST("/device-tokens", tokenCtrl.Register)
	e.DELETE("/device-tokens/:token", tokenCtrl.Unregister)
	e.GET("/device-tokens", tokenCtrl.List)

	// support
	e.POST("/bug-reports", supportCtrl.BugReport)
	e.GET("/weather", supportCtrl.Weather)
	e.GET("/users/nearby", supportCtrl.Nearby)
	e.GET("/server-status", supportCtrl.ServerStatus)

	return e
}
