// pkg/api/client.go

package api

import (
	"context"
	"errors"

	"wellconnect/entities"
)

// ErrUnauthorized is returned for any 401 so the session layer can run its
// local-logout rule.
var ErrUnauthorized = errors.New("unauthorized")

// ServerError carries a 4xx/5xx response whose body had a message field.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string { return e.Message }

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type AuthResult struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type WellFilter struct {
	Name      string   // substring match
	Status    string
	WaterType string
	Owner     string
	EspID     string
	MinLevel  *float64
	MaxLevel  *float64
}

type Page struct {
	Wells []entities.Well `json:"wells"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type WellStats struct {
	WellID         uint    `json:"well_id"`
	AvgLevel       float64 `json:"avg_level"`
	MinLevel       float64 `json:"min_level"`
	MaxLevel       float64 `json:"max_level"`
	ConsumptionLPD float64 `json:"consumption_lpd"`
	Samples        int     `json:"samples"`
}

type DeviceRegistration struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

type BugReport struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	AppInfo string `json:"app_info"`
}

type WeatherReport struct {
	Condition  string  `json:"condition"`
	TempC      float64 `json:"temp_c"`
	RainChance float64 `json:"rain_chance"`
	Humidity   float64 `json:"humidity"`
}

type NearbyUser struct {
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	DistanceKM float64 `json:"distance_km"`
	NeedsLPD   float64 `json:"needs_lpd"`
}

type ServerStatus struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
	Uptime  int64  `json:"uptime_sec"`
}

// Client is the WellConnect REST backend. Every call is a single attempt: no
// retry or backoff, the user repeats the action instead.
type Client interface {
	Login(ctx context.Context, creds Credentials) (AuthResult, error)
	Register(ctx context.Context, reg Registration) (AuthResult, error)
	DeleteAccount(ctx context.Context, token string) error
	UpdateProfile(ctx context.Context, token string, p Profile) error
	UpdateWaterNeeds(ctx context.Context, token string, litersPerDay float64) error
	ValidateToken(ctx context.Context, token string) error

	FilterWells(ctx context.Context, token string, page, limit int, f WellFilter) (Page, error)
	GetWell(ctx context.Context, token string, id uint) (*entities.Well, error)
	EditWell(ctx context.Context, token string, w entities.Well) error
	DeleteWell(ctx context.Context, token string, id uint) error
	WellStats(ctx context.Context, token string, id uint) (WellStats, error)

	RegisterDeviceToken(ctx context.Context, token string, d DeviceRegistration) error
	UnregisterDeviceToken(ctx context.Context, token, value string) error

	SubmitBugReport(ctx context.Context, token string, r BugReport) error
	Weather(ctx context.Context, token string, lat, lon float64) (WeatherReport, error)
	NearbyUsers(ctx context.Context, token string, lat, lon, radiusKM float64) ([]NearbyUser, error)
	ServerStatus(ctx context.Context) (ServerStatus, error)
}
