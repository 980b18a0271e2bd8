package serviceImp

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"wellconnect/entities"
	"wellconnect/pkg/api"
	repo "wellconnect/pkg/session/repository"
	"wellconnect/pkg/session/service"
)

var ErrNotLoggedIn = errors.New("not logged in")

type sessionSvc struct {
	r   repo.ProfileRepository
	api api.Client
	log *zap.SugaredLogger
}

func NewSessionService(r repo.ProfileRepository, c api.Client, log *zap.SugaredLogger) service.SessionService {
	return &sessionSvc{r: r, api: c, log: log}
}

func (s *sessionSvc) Login(ctx context.Context, email, password string) (*entities.UserProfile, error) {
	res, err := s.api.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	p := &entities.UserProfile{
		RemoteID: res.UserID,
		Name:     res.Name,
		Email:    res.Email,
		Phone:    res.Phone,
		Token:    res.Token,
	}
	if p.Email == "" {
		p.Email = email
	}
	if err := s.r.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *sessionSvc) Register(ctx context.Context, name, email, phone, password string) (*entities.UserProfile, error) {
	res, err := s.api.Register(ctx, api.Registration{Name: name, Email: email, Phone: phone, Password: password})
	if err != nil {
		return nil, err
	}
	p := &entities.UserProfile{
		RemoteID: res.UserID,
		Name:     name,
		Email:    email,
		Phone:    phone,
		Token:    res.Token,
	}
	if err := s.r.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *sessionSvc) Logout(ctx context.Context) error {
	return s.r.Clear()
}

func (s *sessionSvc) DeleteAccount(ctx context.Context) error {
	p, err := s.r.Load()
	if err != nil || p == nil || !p.LoggedIn() {
		return ErrNotLoggedIn
	}
	if err := s.api.DeleteAccount(ctx, p.Token); err != nil {
		s.dropOn401(err)
		return err
	}
	return s.r.Clear()
}

func (s *sessionSvc) Profile() (*entities.UserProfile, error) { return s.r.Load() }

func (s *sessionSvc) UpdateProfile(ctx context.Context, name, email, phone string) error {
	p, err := s.r.Load()
	if err != nil || p == nil || !p.LoggedIn() {
		return ErrNotLoggedIn
	}
	if err := s.api.UpdateProfile(ctx, p.Token, api.Profile{Name: name, Email: email, Phone: phone}); err != nil {
		s.dropOn401(err)
		return err
	}
	p.Name, p.Email, p.Phone = name, email, phone
	return s.r.Save(p)
}

func (s *sessionSvc) UpdateWaterNeeds(ctx context.Context, litersPerDay float64) error {
	p, err := s.r.Load()
	if err != nil || p == nil || !p.LoggedIn() {
		return ErrNotLoggedIn
	}
	if err := s.api.UpdateWaterNeeds(ctx, p.Token, litersPerDay); err != nil {
		s.dropOn401(err)
		return err
	}
	p.WaterNeedsLPD = litersPerDay
	return s.r.Save(p)
}

func (s *sessionSvc) Token() string {
	p, err := s.r.Load()
	if err != nil || p == nil {
		return ""
	}
	if p.Token != "" && tokenExpired(p.Token) {
		s.log.Infow("stored token past expiry, dropping")
		_ = s.r.Clear()
		return ""
	}
	return p.Token
}

func (s *sessionSvc) ValidateToken(ctx context.Context) bool {
	p, err := s.r.Load()
	if err != nil || p == nil || !p.LoggedIn() {
		return false
	}
	if err := s.api.ValidateToken(ctx, p.Token); err != nil {
		s.dropOn401(err)
		return false
	}
	return true
}

// dropOn401 implements the 401-logout rule: the server no longer honors the
// token, so the local copy goes too.
func (s *sessionSvc) dropOn401(err error) {
	if errors.Is(err, api.ErrUnauthorized) {
		s.log.Infow("server rejected token, logging out locally")
		if cerr := s.r.Clear(); cerr != nil {
			s.log.Errorw("clearing profile after 401 failed", "err", cerr)
		}
	}
}

// tokenExpired peeks at the exp claim without verifying the signature (the
// client has no key); an unparsable token is treated as opaque and kept.
func tokenExpired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
