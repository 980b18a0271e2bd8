package repository

import "wellconnect/entities"

// ProfileRepository stores the single on-device profile as a whole document.
type ProfileRepository interface {
	// Load returns (nil, nil) when no profile has ever been stored.
	Load() (*entities.UserProfile, error)
	// Save replaces the stored document in full.
	Save(p *entities.UserProfile) error
	Clear() error
}
