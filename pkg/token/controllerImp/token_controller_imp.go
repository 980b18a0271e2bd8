package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	sessionSvc "wellconnect/pkg/session/service"
	"wellconnect/pkg/token/service"
)

type TokenCtrl struct {
	svc  service.TokenService
	sess sessionSvc.SessionService
}

func New(svc service.TokenService, sess sessionSvc.SessionService) *TokenCtrl {
	return &TokenCtrl{svc: svc, sess: sess}
}

func (h *TokenCtrl) Register(c echo.Context) error {
	var req struct {
		Platform string `json:"platform"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Platform == "" {
		req.Platform = "agent"
	}
	account := ""
	if p, err := h.sess.Profile(); err == nil && p != nil {
		account = p.RemoteID
	}
	t, mirrored, err := h.svc.Register(c.Request().Context(), req.Platform, account, h.sess.Token())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"token": t, "mirrored": mirrored})
}

func (h *TokenCtrl) Unregister(c echo.Context) error {
	value := c.Param("token")
	mirrored, err := h.svc.Unregister(c.Request().Context(), value, h.sess.Token())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"mirrored": mirrored})
}

func (h *TokenCtrl) List(c echo.Context) error {
	out, err := h.svc.List()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
