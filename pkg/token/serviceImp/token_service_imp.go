package serviceImp

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wellconnect/entities"
	"wellconnect/pkg/api"
	repo "wellconnect/pkg/token/repository"
	"wellconnect/pkg/token/service"
)

type tokenSvc struct {
	r   repo.TokenRepository
	api api.Client
	log *zap.SugaredLogger
}

func NewTokenService(r repo.TokenRepository, c api.Client, log *zap.SugaredLogger) service.TokenService {
	return &tokenSvc{r: r, api: c, log: log}
}

// Register creates the token locally first, then mirrors it. The bool says
// whether the server accepted it.
func (s *tokenSvc) Register(ctx context.Context, platform, account, authToken string) (*entities.DeviceToken, bool, error) {
	t := &entities.DeviceToken{
		Token:    uuid.NewString(),
		Platform: platform,
		Account:  account,
	}
	if err := s.r.Create(t); err != nil {
		return nil, false, err
	}
	if err := s.api.RegisterDeviceToken(ctx, authToken, api.DeviceRegistration{Token: t.Token, Platform: platform}); err != nil {
		s.log.Warnw("device token not registered remotely", "token", t.Token, "err", err)
		return t, false, nil
	}
	return t, true, nil
}

func (s *tokenSvc) Unregister(ctx context.Context, value, authToken string) (bool, error) {
	if err := s.r.Delete(value); err != nil {
		return false, err
	}
	if err := s.api.UnregisterDeviceToken(ctx, authToken, value); err != nil {
		s.log.Warnw("device token not unregistered remotely", "token", value, "err", err)
		return false, nil
	}
	return true, nil
}

func (s *tokenSvc) List() ([]entities.DeviceToken, error) { return s.r.List() }
