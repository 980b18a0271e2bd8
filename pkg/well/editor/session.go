// Package editor holds the draft/snapshot state machine behind the well edit
// screen: one mutable draft, one snapshot taken at the last successful
// persist, and a three-way close policy that neither litters the store with
// empty drafts nor silently loses real edits.
package editor

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"wellconnect/entities"
	"wellconnect/pkg/well/service"
)

// ActionState gives feedback on the last discrete action (load/save/delete),
// independent of the draft itself.
type ActionState struct {
	Kind    string `json:"kind"` // idle|busy|success|error
	Message string `json:"message,omitempty"`
}

const (
	ActionIdle    = "idle"
	ActionBusy    = "busy"
	ActionSuccess = "success"
	ActionError   = "error"
)

// BackAction is the outcome of a close request.
type BackAction int

const (
	// LeaveSilently: nothing to do, the record stands as persisted.
	LeaveSilently BackAction = iota
	// DiscardedDraft: the abandoned, contentless draft was deleted outright.
	DiscardedDraft
	// PromptSaveOrDiscard: unsaved changes exist; the caller must ask the
	// user and follow up with SaveAndExit or DiscardAndExit.
	PromptSaveOrDiscard
)

var ErrNotLoaded = errors.New("editor: no record loaded")

type Session struct {
	mu    sync.Mutex
	svc   service.WellService
	log   *zap.SugaredLogger
	owner string // placeholder applied to a blank owner on save

	loaded bool
	draft  entities.Well
	saved  entities.Well
	action ActionState
}

func NewSession(svc service.WellService, log *zap.SugaredLogger, ownerPlaceholder string) *Session {
	return &Session{svc: svc, log: log, owner: ownerPlaceholder, action: ActionState{Kind: ActionIdle}}
}

// Load pulls the record from the local store. A local miss falls through to
// the server once (which also lands the record locally with a fresh refresh
// stamp); if that misses too the session starts from a blank draft carrying
// the requested id. After Load, draft == saved.
func (s *Session) Load(ctx context.Context, id uint, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.action = ActionState{Kind: ActionBusy}
	w, err := s.svc.GetLocal(id)
	if err != nil {
		s.action = ActionState{Kind: ActionError, Message: err.Error()}
		return err
	}
	if w == nil {
		if rw, rerr := s.svc.RefreshFromServer(ctx, id, token); rerr == nil {
			w = rw
		} else {
			s.log.Debugw("load: record not on server either", "id", id, "err", rerr)
		}
	}
	if w == nil {
		s.draft = entities.Well{ID: id, Status: entities.StatusUnknown}
	} else {
		s.draft = w.Clone()
	}
	s.saved = s.draft.Clone()
	s.loaded = true
	s.action = ActionState{Kind: ActionIdle}
	return nil
}

// Apply mutates the draft only.
func (s *Session) Apply(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev.apply(&s.draft)
}

func (s *Session) Draft() entities.Well {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

func (s *Session) ActionState() ActionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.action
}

func (s *Session) HasUnsavedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.draft.Equal(s.saved)
}

func (s *Session) IsSavable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Savable()
}

// Save persists the draft locally, snapshots it, then kicks off a best-effort
// remote push that the UI never waits on. A blank owner gets the placeholder
// first. Only a local storage failure comes back as an error.
func (s *Session) Save(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	s.action = ActionState{Kind: ActionBusy}
	if s.draft.Owner == "" {
		s.draft.Owner = s.owner
	}
	if !s.svc.IsEspIDUnique(ctx, s.draft.EspID) && s.draft.EspID != s.saved.EspID {
		// advisory only
		s.log.Warnw("esp id already in use locally", "esp_id", s.draft.EspID)
	}
	if err := s.svc.SaveWell(ctx, &s.draft); err != nil {
		s.action = ActionState{Kind: ActionError, Message: err.Error()}
		return err
	}
	s.saved = s.draft.Clone()
	s.action = ActionState{Kind: ActionSuccess, Message: "saved"}
	// fire-and-forget; result only logged inside the service
	_ = s.svc.PushToServer(&s.draft, token)
	return nil
}

// Discard reverts the draft to exactly the last persisted snapshot.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = s.saved.Clone()
}

// CloseRequested applies the back-navigation policy:
//   - unsaved changes       -> PromptSaveOrDiscard, nothing touched
//   - clean but contentless -> the record is deleted from the store outright
//   - clean and savable     -> LeaveSilently
func (s *Session) CloseRequested(ctx context.Context, token string) (BackAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return LeaveSilently, nil
	}
	if !s.draft.Equal(s.saved) {
		return PromptSaveOrDiscard, nil
	}
	if !s.draft.Savable() {
		// local cleanup only: the record may still exist on the server
		// (a refresh that failed mid-load), and nobody asked to delete it
		if ok := s.svc.DeleteLocal(s.draft.ID); !ok {
			s.action = ActionState{Kind: ActionError, Message: "could not remove abandoned draft"}
		}
		s.loaded = false
		return DiscardedDraft, nil
	}
	s.loaded = false
	return LeaveSilently, nil
}

// SaveAndExit resolves a PromptSaveOrDiscard in favor of keeping the edits.
func (s *Session) SaveAndExit(ctx context.Context, token string) error {
	if err := s.Save(ctx, token); err != nil {
		return err
	}
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
	return nil
}

// DiscardAndExit resolves a PromptSaveOrDiscard by dropping the edits, then
// re-runs the close policy on the now-clean draft.
func (s *Session) DiscardAndExit(ctx context.Context, token string) (BackAction, error) {
	s.Discard()
	return s.CloseRequested(ctx, token)
}
