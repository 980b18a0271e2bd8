package service

import (
	"context"

	"wellconnect/entities"
)

// SessionService owns the login token lifecycle. Any call that comes back 401
// clears the token locally (the remote session is gone, pretending otherwise
// just queues more failures).
type SessionService interface {
	Login(ctx context.Context, email, password string) (*entities.UserProfile, error)
	Register(ctx context.Context, name, email, phone, password string) (*entities.UserProfile, error)
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error

	Profile() (*entities.UserProfile, error)
	UpdateProfile(ctx context.Context, name, email, phone string) error
	UpdateWaterNeeds(ctx context.Context, litersPerDay float64) error

	// Token returns the stored login token, or "" when logged out or the
	// token is already past its expiry claim.
	Token() string
	ValidateToken(ctx context.Context) bool
}
