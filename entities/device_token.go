package entities

import "time"

// DeviceToken is a push-notification registration tied to the logged-in
// account. The token value is generated locally and registered remotely.
type DeviceToken struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Token    string `json:"token" gorm:"uniqueIndex"`
	Platform string `json:"platform"` // android|ios|agent
	Account  string `json:"account"`

	CreatedAt time.Time
}
