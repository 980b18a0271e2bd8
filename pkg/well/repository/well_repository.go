package repository

import (
	"errors"

	"wellconnect/entities"
)

// ErrStore marks local storage failures. Callers treat these differently from
// remote errors: they are surfaced to the user, never absorbed.
var ErrStore = errors.New("well store failure")

type WellRepository interface {
	// GetAll returns every record in stored (id ascending) order.
	GetAll() ([]entities.Well, error)
	// GetByID returns (nil, nil) when the id is absent.
	GetByID(id uint) (*entities.Well, error)
	// Save upserts: replaces the record with the same id or appends a new one.
	// A zero id gets a fresh locally-assigned id written back into w.
	Save(w *entities.Well) error
	// Delete is a no-op when the id is absent.
	Delete(id uint) error
	// SwapIDs exchanges the id values of the two records currently holding
	// a and b. No-op unless both exist. Self-inverse.
	SwapIDs(a, b uint) error
}
