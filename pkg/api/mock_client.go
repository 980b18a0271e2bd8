// pkg/api/mock_client.go

package api

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"wellconnect/entities"
)

// Mock is an in-memory stand-in for the backend, used when API_BASE_URL is
// unset and throughout the tests. FailWith makes every subsequent call return
// that error until cleared.
type Mock struct {
	mu       sync.Mutex
	wells    map[uint]entities.Well
	tokens   map[string]bool
	failWith error

	Edited     []uint // ids pushed via EditWell, in order
	Deleted    []uint
	BugReports []BugReport
}

func NewMock() *Mock {
	return &Mock{wells: map[uint]entities.Well{}, tokens: map[string]bool{}}
}

func (m *Mock) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// Seed places a well on the fake server.
func (m *Mock) Seed(w entities.Well) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wells[w.ID] = w.Clone()
}

func (m *Mock) fail() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failWith
}

func (m *Mock) Login(ctx context.Context, creds Credentials) (AuthResult, error) {
	if err := m.fail(); err != nil {
		return AuthResult{}, err
	}
	if creds.Email == "" || creds.Password == "" {
		return AuthResult{}, &ServerError{Status: 400, Message: "email and password required"}
	}
	return AuthResult{Token: "mock-token-" + creds.Email, UserID: "u-" + creds.Email, Email: creds.Email}, nil
}

func (m *Mock) Register(ctx context.Context, reg Registration) (AuthResult, error) {
	if err := m.fail(); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: "mock-token-" + reg.Email, UserID: "u-" + reg.Email, Name: reg.Name, Email: reg.Email, Phone: reg.Phone}, nil
}

func (m *Mock) DeleteAccount(ctx context.Context, token string) error  { return m.fail() }
func (m *Mock) UpdateProfile(ctx context.Context, token string, p Profile) error {
	return m.fail()
}
func (m *Mock) UpdateWaterNeeds(ctx context.Context, token string, litersPerDay float64) error {
	return m.fail()
}
func (m *Mock) ValidateToken(ctx context.Context, token string) error { return m.fail() }

func (m *Mock) FilterWells(ctx context.Context, token string, page, limit int, f WellFilter) (Page, error) {
	if err := m.fail(); err != nil {
		return Page{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []entities.Well
	for _, w := range m.wells {
		if f.Name != "" && !strings.Contains(strings.ToLower(w.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.Status != "" && w.Status != f.Status {
			continue
		}
		if f.WaterType != "" && w.WaterType != f.WaterType {
			continue
		}
		if f.Owner != "" && w.Owner != f.Owner {
			continue
		}
		if f.EspID != "" && w.EspID != f.EspID {
			continue
		}
		if f.MinLevel != nil || f.MaxLevel != nil {
			lvl, err := strconv.ParseFloat(strings.TrimSpace(w.WaterLevel), 64)
			if err != nil {
				continue
			}
			if f.MinLevel != nil && lvl < *f.MinLevel {
				continue
			}
			if f.MaxLevel != nil && lvl > *f.MaxLevel {
				continue
			}
		}
		all = append(all, w.Clone())
	}
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	out := Page{Total: int64(len(all)), Page: page, Limit: limit}
	if start < len(all) {
		end := start + limit
		if end > len(all) {
			end = len(all)
		}
		out.Wells = all[start:end]
	}
	return out, nil
}

func (m *Mock) GetWell(ctx context.Context, token string, id uint) (*entities.Well, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.wells[id]
	if !ok {
		return nil, &ServerError{Status: 404, Message: "well not found"}
	}
	cp := w.Clone()
	return &cp, nil
}

func (m *Mock) EditWell(ctx context.Context, token string, w entities.Well) error {
	if err := m.fail(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wells[w.ID] = w.Clone()
	m.Edited = append(m.Edited, w.ID)
	return nil
}

func (m *Mock) DeleteWell(ctx context.Context, token string, id uint) error {
	if err := m.fail(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.wells, id)
	m.Deleted = append(m.Deleted, id)
	return nil
}

func (m *Mock) WellStats(ctx context.Context, token string, id uint) (WellStats, error) {
	if err := m.fail(); err != nil {
		return WellStats{}, err
	}
	return WellStats{WellID: id, Samples: 0}, nil
}

func (m *Mock) RegisterDeviceToken(ctx context.Context, token string, d DeviceRegistration) error {
	if err := m.fail(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[d.Token] = true
	return nil
}

func (m *Mock) UnregisterDeviceToken(ctx context.Context, token, value string) error {
	if err := m.fail(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, value)
	return nil
}

func (m *Mock) SubmitBugReport(ctx context.Context, token string, r BugReport) error {
	if err := m.fail(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BugReports = append(m.BugReports, r)
	return nil
}

func (m *Mock) Weather(ctx context.Context, token string, lat, lon float64) (WeatherReport, error) {
	if err := m.fail(); err != nil {
		return WeatherReport{}, err
	}
	return WeatherReport{Condition: "clear", TempC: 28, RainChance: 0.1, Humidity: 0.5}, nil
}

func (m *Mock) NearbyUsers(ctx context.Context, token string, lat, lon, radiusKM float64) ([]NearbyUser, error) {
	if err := m.fail(); err != nil {
		return nil, err
	}
	return nil, nil
}

func (m *Mock) ServerStatus(ctx context.Context) (ServerStatus, error) {
	if err := m.fail(); err != nil {
		return ServerStatus{}, err
	}
	return ServerStatus{OK: true, Version: "mock"}, nil
}
