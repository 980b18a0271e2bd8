package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"wellconnect/pkg/session/service"
)

type SessionCtrl struct{ svc service.SessionService }

func New(svc service.SessionService) *SessionCtrl { return &SessionCtrl{svc} }

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *SessionCtrl) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	p, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, p)
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (h *SessionCtrl) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	p, err := h.svc.Register(c.Request().Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *SessionCtrl) Logout(c echo.Context) error {
	if err := h.svc.Logout(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SessionCtrl) DeleteAccount(c echo.Context) error {
	if err := h.svc.DeleteAccount(c.Request().Context()); err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SessionCtrl) Profile(c echo.Context) error {
	p, err := h.svc.Profile()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if p == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no profile stored"})
	}
	return c.JSON(http.StatusOK, p)
}

func (h *SessionCtrl) UpdateProfile(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := h.svc.UpdateProfile(c.Request().Context(), req.Name, req.Email, req.Phone); err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SessionCtrl) UpdateWaterNeeds(c echo.Context) error {
	var req struct {
		WaterNeedsLPD float64 `json:"water_needs_lpd"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := h.svc.UpdateWaterNeeds(c.Request().Context(), req.WaterNeedsLPD); err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SessionCtrl) Validate(c echo.Context) error {
	ok := h.svc.ValidateToken(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]bool{"valid": ok})
}
