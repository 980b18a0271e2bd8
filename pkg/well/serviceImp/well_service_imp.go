package serviceImp

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"wellconnect/entities"
	"wellconnect/pkg/api"
	repo "wellconnect/pkg/well/repository"
	"wellconnect/pkg/well/service"
)

const pushTimeout = 30 * time.Second

type wellSvc struct {
	r   repo.WellRepository
	api api.Client
	log *zap.SugaredLogger
}

func NewWellService(r repo.WellRepository, c api.Client, log *zap.SugaredLogger) service.WellService {
	return &wellSvc{r: r, api: c, log: log}
}

func (s *wellSvc) ListLocal() ([]entities.Well, error) { return s.r.GetAll() }

func (s *wellSvc) GetLocal(id uint) (*entities.Well, error) { return s.r.GetByID(id) }

// SaveWell writes locally. The only failure a caller sees is the store's own;
// nothing here touches the network.
func (s *wellSvc) SaveWell(ctx context.Context, w *entities.Well) error {
	return s.r.Save(w)
}

func (s *wellSvc) SaveWellToServer(ctx context.Context, w *entities.Well, token string) bool {
	if err := s.api.EditWell(ctx, token, *w); err != nil {
		s.log.Warnw("push well to server failed", "id", w.ID, "err", err)
		return false
	}
	return true
}

// PushToServer runs one best-effort push in the background. The returned
// channel is buffered so the caller may drop it; the goroutine writes the
// result and a log line and mutates nothing else.
func (s *wellSvc) PushToServer(w *entities.Well, token string) <-chan bool {
	cp := w.Clone()
	done := make(chan bool, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		done <- s.SaveWellToServer(ctx, &cp, token)
	}()
	return done
}

func (s *wellSvc) DeleteLocal(id uint) bool {
	if err := s.r.Delete(id); err != nil {
		s.log.Errorw("delete well locally failed", "id", id, "err", err)
		return false
	}
	return true
}

func (s *wellSvc) DeleteWell(ctx context.Context, id uint, token string) bool {
	if err := s.r.Delete(id); err != nil {
		s.log.Errorw("delete well locally failed", "id", id, "err", err)
		return false
	}
	if err := s.api.DeleteWell(ctx, token, id); err != nil {
		// remote mirror drifts; local delete stands
		s.log.Warnw("delete well on server failed", "id", id, "err", err)
	}
	return true
}

func (s *wellSvc) SwapIDs(a, b uint) error { return s.r.SwapIDs(a, b) }

func (s *wellSvc) GetFilteredWells(ctx context.Context, token string, page, limit int, f api.WellFilter) (api.Page, error) {
	return s.api.FilterWells(ctx, token, page, limit, f)
}

// RefreshFromServer fetches the remote record, stamps the refresh time and
// upserts it locally. Edits afterwards do not move the stamp until the next
// explicit refresh.
func (s *wellSvc) RefreshFromServer(ctx context.Context, id uint, token string) (*entities.Well, error) {
	w, err := s.api.GetWell(ctx, token, id)
	if err != nil {
		return nil, err
	}
	w.LastRefreshTime = time.Now()
	if err := s.r.Save(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *wellSvc) WellStats(ctx context.Context, id uint, token string) (api.WellStats, error) {
	return s.api.WellStats(ctx, token, id)
}

// IsEspIDUnique checks the local corpus only, so it catches duplicates on
// the same device. Advisory: callers warn, they do not block.
func (s *wellSvc) IsEspIDUnique(ctx context.Context, espID string) bool {
	espID = strings.TrimSpace(espID)
	if espID == "" {
		return true
	}
	all, err := s.r.GetAll()
	if err != nil {
		s.log.Warnw("esp id uniqueness check skipped", "err", err)
		return true
	}
	for _, w := range all {
		if strings.EqualFold(strings.TrimSpace(w.EspID), espID) {
			return false
		}
	}
	return true
}
