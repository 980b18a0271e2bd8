package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"wellconnect/pkg/api"
	sessionSvc "wellconnect/pkg/session/service"
)

// SupportCtrl proxies the odds-and-ends endpoints (bug reports, weather,
// nearby users, server status) straight through to the backend.
type SupportCtrl struct {
	api  api.Client
	sess sessionSvc.SessionService
}

func New(c api.Client, sess sessionSvc.SessionService) *SupportCtrl {
	return &SupportCtrl{api: c, sess: sess}
}

func (h *SupportCtrl) BugReport(c echo.Context) error {
	var r api.BugReport
	if err := c.Bind(&r); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := h.api.SubmitBugReport(c.Request().Context(), h.sess.Token(), r); err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusAccepted)
}

func coords(c echo.Context) (lat, lon float64) {
	lat, _ = strconv.ParseFloat(c.QueryParam("lat"), 64)
	lon, _ = strconv.ParseFloat(c.QueryParam("lon"), 64)
	return
}

func (h *SupportCtrl) Weather(c echo.Context) error {
	lat, lon := coords(c)
	w, err := h.api.Weather(c.Request().Context(), h.sess.Token(), lat, lon)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, w)
}

func (h *SupportCtrl) Nearby(c echo.Context) error {
	lat, lon := coords(c)
	radius, _ := strconv.ParseFloat(c.QueryParam("radius"), 64)
	if radius <= 0 {
		radius = 10
	}
	out, err := h.api.NearbyUsers(c.Request().Context(), h.sess.Token(), lat, lon, radius)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SupportCtrl) ServerStatus(c echo.Context) error {
	st, err := h.api.ServerStatus(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, st)
}
