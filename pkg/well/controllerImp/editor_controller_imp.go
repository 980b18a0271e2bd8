package controllerImp

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"wellconnect/pkg/well/controller"
	"wellconnect/pkg/well/editor"
	sessionSvc "wellconnect/pkg/session/service"
	"wellconnect/pkg/well/service"
)

// EditorCtrl exposes one edit session per well id. Sessions live until the
// close policy lets them go.
type EditorCtrl struct {
	mu    sync.Mutex
	open  map[uint]*editor.Session
	svc   service.WellService
	sess  sessionSvc.SessionService
	log   *zap.SugaredLogger
	owner string
}

func NewEditor(svc service.WellService, sess sessionSvc.SessionService, log *zap.SugaredLogger, ownerPlaceholder string) controller.EditorController {
	return &EditorCtrl{open: map[uint]*editor.Session{}, svc: svc, sess: sess, log: log, owner: ownerPlaceholder}
}

func (h *EditorCtrl) session(id uint) *editor.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open[id]
}

func (h *EditorCtrl) Open(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	s := editor.NewSession(h.svc, h.log, h.owner)
	if err := s.Load(c.Request().Context(), id, h.sess.Token()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	h.mu.Lock()
	h.open[id] = s
	h.mu.Unlock()
	return c.JSON(http.StatusOK, h.state(s))
}

func (h *EditorCtrl) state(s *editor.Session) map[string]any {
	return map[string]any{
		"draft":           s.Draft(),
		"unsaved_changes": s.HasUnsavedChanges(),
		"savable":         s.IsSavable(),
		"action":          s.ActionState(),
	}
}

func (h *EditorCtrl) State(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	s := h.session(id)
	if s == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no open session"})
	}
	return c.JSON(http.StatusOK, h.state(s))
}

type eventReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Key   string `json:"key,omitempty"` // for extra
}

func (r eventReq) toEvent() (editor.Event, bool) {
	switch r.Field {
	case "name":
		return editor.NameEntered{Value: r.Value}, true
	case "owner":
		return editor.OwnerEntered{Value: r.Value}, true
	case "location":
		return editor.LocationEntered{Value: r.Value}, true
	case "esp_id":
		return editor.EspIDEntered{Value: r.Value}, true
	case "ip_address":
		return editor.IPAddressEntered{Value: r.Value}, true
	case "status":
		return editor.StatusSelected{Value: r.Value}, true
	case "water_type":
		return editor.WaterTypeSelected{Value: r.Value}, true
	case "capacity":
		return editor.CapacityEntered{Value: r.Value}, true
	case "water_level":
		return editor.WaterLevelEntered{Value: r.Value}, true
	case "consumption":
		return editor.ConsumptionEntered{Value: r.Value}, true
	case "extra":
		return editor.ExtraSet{Key: r.Key, Value: r.Value}, true
	}
	return nil, false
}

func (h *EditorCtrl) Event(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	s := h.session(id)
	if s == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no open session"})
	}
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	ev, ok := req.toEvent()
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown field: " + req.Field})
	}
	s.Apply(ev)
	return c.JSON(http.StatusOK, h.state(s))
}

func (h *EditorCtrl) Save(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	s := h.session(id)
	if s == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no open session"})
	}
	if err := s.Save(c.Request().Context(), h.sess.Token()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, h.state(s))
}

func (h *EditorCtrl) Discard(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	s := h.session(id)
	if s == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no open session"})
	}
	s.Discard()
	return c.JSON(http.StatusOK, h.state(s))
}

func backActionName(a editor.BackAction) string {
	switch a {
	case editor.DiscardedDraft:
		return "discarded_draft"
	case editor.PromptSaveOrDiscard:
		return "prompt"
	default:
		return "left"
	}
}

func (h *EditorCtrl) Close(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	s := h.session(id)
	if s == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no open session"})
	}
	action, err := s.CloseRequested(c.Request().Context(), h.sess.Token())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if action != editor.PromptSaveOrDiscard {
		h.mu.Lock()
		delete(h.open, id)
		h.mu.Unlock()
	}
	return c.JSON(http.StatusOK, map[string]string{"action": backActionName(action)})
}

// Resolve answers a prompt: {"choice":"save"} or {"choice":"discard"}.
func (h *EditorCtrl) Resolve(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad id"})
	}
	s := h.session(id)
	if s == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no open session"})
	}
	var req struct {
		Choice string `json:"choice"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	switch req.Choice {
	case "save":
		if err := s.SaveAndExit(c.Request().Context(), h.sess.Token()); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		h.mu.Lock()
		delete(h.open, id)
		h.mu.Unlock()
		return c.JSON(http.StatusOK, map[string]string{"action": "saved"})
	case "discard":
		action, err := s.DiscardAndExit(c.Request().Context(), h.sess.Token())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		h.mu.Lock()
		delete(h.open, id)
		h.mu.Unlock()
		return c.JSON(http.StatusOK, map[string]string{"action": backActionName(action)})
	}
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "choice must be save or discard"})
}
