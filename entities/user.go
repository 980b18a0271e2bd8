package entities

import "time"

// UserProfile is stored as a whole document: at most one row exists and it is
// replaced in full on every update.
type UserProfile struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RemoteID string `json:"remote_id"`
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"index"`
	Phone    string `json:"phone"`

	// Daily household water needs in liters, used by the server for
	// nearby-user matching.
	WaterNeedsLPD float64 `json:"water_needs_lpd"`

	Token string `json:"-"` // login token; blank means logged out

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p UserProfile) LoggedIn() bool { return p.Token != "" }
