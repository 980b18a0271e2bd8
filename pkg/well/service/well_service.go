package service

import (
	"context"

	"wellconnect/entities"
	"wellconnect/pkg/api"
)

// WellService is the single answer to "where does a well live": the local
// store is what the UI shows, the server is a best-effort mirror. Remote
// failures never roll back or block a local write.
type WellService interface {
	// Local, authoritative.
	ListLocal() ([]entities.Well, error)
	GetLocal(id uint) (*entities.Well, error)
	SaveWell(ctx context.Context, w *entities.Well) error
	// DeleteLocal drops the row without touching the server. For cleanup of
	// records the user never asked to delete, like abandoned drafts.
	DeleteLocal(id uint) bool
	DeleteWell(ctx context.Context, id uint, token string) bool
	SwapIDs(a, b uint) error

	// Remote, best-effort.
	SaveWellToServer(ctx context.Context, w *entities.Well, token string) bool
	PushToServer(w *entities.Well, token string) <-chan bool
	GetFilteredWells(ctx context.Context, token string, page, limit int, f api.WellFilter) (api.Page, error)
	RefreshFromServer(ctx context.Context, id uint, token string) (*entities.Well, error)
	WellStats(ctx context.Context, id uint, token string) (api.WellStats, error)

	// Advisory only: the save path never blocks on it.
	IsEspIDUnique(ctx context.Context, espID string) bool
}
