package service

import (
	"context"

	"wellconnect/entities"
)

// TokenService issues push-notification device tokens and mirrors them to the
// server. The local record is the source of truth for what this device thinks
// it registered; a failed remote call is reported but does not undo it.
type TokenService interface {
	Register(ctx context.Context, platform, account, authToken string) (*entities.DeviceToken, bool, error)
	Unregister(ctx context.Context, value, authToken string) (bool, error)
	List() ([]entities.DeviceToken, error)
}
