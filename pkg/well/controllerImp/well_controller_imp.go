package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"wellconnect/entities"
	"wellconnect/pkg/api"
	"wellconnect/pkg/device"
	"wellconnect/pkg/export"
	sessionSvc "wellconnect/pkg/session/service"
	"wellconnect/pkg/well/controller"
	"wellconnect/pkg/well/repository"
	"wellconnect/pkg/well/service"
)

type WellCtrl struct {
	svc   service.WellService
	sess  sessionSvc.SessionService
	probe *device.Probe
}

func New(svc service.WellService, sess sessionSvc.SessionService, probe *device.Probe) controller.WellController {
	return &WellCtrl{svc: svc, sess: sess, probe: probe}
}

func paramID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err == nil
}

// httpStatus keeps the error asymmetry visible at the HTTP layer: local store
// failures are 500 (data at risk), remote ones surface as 502 with the raw
// message.
func httpStatus(err error) int {
	if errors.Is(err, repository.ErrStore) {
		return http.StatusInternalServerError
	}
	var se *api.ServerError
	if errors.As(err, &se) {
		return http.StatusBadGateway
	}
	if errors.Is(err, api.ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	return http.StatusBadGateway
}

func (h *WellCtrl) List(c echo.Context) error {
	wells, err := h.svc.ListLocal()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, wells)
}

func (h *WellCtrl) Get(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	w, err := h.svc.GetLocal(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if w == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, w)
}

func (h *WellCtrl) Save(c echo.Context) error {
	var w entities.Well
	if err := c.Bind(&w); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := h.svc.SaveWell(c.Request().Context(), &w); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	// mirror in the background, result intentionally dropped
	h.svc.PushToServer(&w, h.sess.Token())
	return c.JSON(http.StatusCreated, w)
}

func (h *WellCtrl) Delete(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	if ok := h.svc.DeleteWell(c.Request().Context(), id, h.sess.Token()); !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WellCtrl) Swap(c echo.Context) error {
	var req struct {
		A uint `json:"a"`
		B uint `json:"b"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := h.svc.SwapIDs(req.A, req.B); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *WellCtrl) Refresh(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	w, err := h.svc.RefreshFromServer(c.Request().Context(), id, h.sess.Token())
	if err != nil {
		return c.JSON(httpStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, w)
}

func (h *WellCtrl) Filter(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	f := api.WellFilter{
		Name:      c.QueryParam("name"),
		Status:    c.QueryParam("status"),
		WaterType: c.QueryParam("waterType"),
		Owner:     c.QueryParam("owner"),
		EspID:     c.QueryParam("espId"),
	}
	if v := c.QueryParam("minWaterLevel"); v != "" {
		if lvl, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinLevel = &lvl
		}
	}
	if v := c.QueryParam("maxWaterLevel"); v != "" {
		if lvl, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxLevel = &lvl
		}
	}
	p, err := h.svc.GetFilteredWells(c.Request().Context(), h.sess.Token(), page, limit, f)
	if err != nil {
		return c.JSON(httpStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, p)
}

func (h *WellCtrl) Stats(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	st, err := h.svc.WellStats(c.Request().Context(), id, h.sess.Token())
	if err != nil {
		return c.JSON(httpStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, st)
}

func (h *WellCtrl) Probe(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	w, err := h.svc.GetLocal(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if w == nil || w.IPAddress == "" {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "well has no device address"})
	}
	st, err := h.probe.Read(c.Request().Context(), w.IPAddress)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, st)
}

func (h *WellCtrl) Export(c echo.Context) error {
	wells, err := h.svc.ListLocal()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="wells.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteTo(wells, c.Response())
}
