// pkg/api/http_client.go

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"wellconnect/entities"
)

type httpClient struct {
	base  string
	httpc *http.Client
}

func NewHTTP(base string, timeout time.Duration) Client {
	return &httpClient{
		base:  strings.TrimRight(base, "/"),
		httpc: &http.Client{Timeout: timeout},
	}
}

// do runs one request. Transport failures come back as a generic network
// error, 401 as ErrUnauthorized, other non-2xx as ServerError with the body's
// message field when present.
func (c *httpClient) do(ctx context.Context, method, path, token string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Message == "" {
			e.Message = "request failed: " + resp.Status
		}
		return &ServerError{Status: resp.StatusCode, Message: e.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *httpClient) Login(ctx context.Context, creds Credentials) (AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, http.MethodPost, "/api/users/login", "", creds, &out)
	return out, err
}

func (c *httpClient) Register(ctx context.Context, reg Registration) (AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, http.MethodPost, "/api/users/register", "", reg, &out)
	return out, err
}

func (c *httpClient) DeleteAccount(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/api/users", token, nil, nil)
}

func (c *httpClient) UpdateProfile(ctx context.Context, token string, p Profile) error {
	return c.do(ctx, http.MethodPut, "/api/users/profile", token, p, nil)
}

func (c *httpClient) UpdateWaterNeeds(ctx context.Context, token string, litersPerDay float64) error {
	body := map[string]float64{"water_needs_lpd": litersPerDay}
	return c.do(ctx, http.MethodPut, "/api/users/water-needs", token, body, nil)
}

func (c *httpClient) ValidateToken(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodGet, "/api/auth/validate", token, nil, nil)
}

func (c *httpClient) FilterWells(ctx context.Context, token string, page, limit int, f WellFilter) (Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if f.Name != "" {
		q.Set("name", f.Name)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.WaterType != "" {
		q.Set("waterType", f.WaterType)
	}
	if f.Owner != "" {
		q.Set("owner", f.Owner)
	}
	if f.EspID != "" {
		q.Set("espId", f.EspID)
	}
	if f.MinLevel != nil {
		q.Set("minWaterLevel", strconv.FormatFloat(*f.MinLevel, 'f', -1, 64))
	}
	if f.MaxLevel != nil {
		q.Set("maxWaterLevel", strconv.FormatFloat(*f.MaxLevel, 'f', -1, 64))
	}

	var raw struct {
		Wells []json.RawMessage `json:"wells"`
		Total int64             `json:"total"`
		Page  int               `json:"page"`
		Limit int               `json:"limit"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/wells?"+q.Encode(), token, nil, &raw); err != nil {
		return Page{}, err
	}
	out := Page{Total: raw.Total, Page: raw.Page, Limit: raw.Limit}
	for _, r := range raw.Wells {
		w, err := decodeWell(r)
		if err != nil {
			return Page{}, fmt.Errorf("decode well: %w", err)
		}
		out.Wells = append(out.Wells, w)
	}
	return out, nil
}

func (c *httpClient) GetWell(ctx context.Context, token string, id uint) (*entities.Well, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/wells/"+strconv.FormatUint(uint64(id), 10), token, nil, &raw); err != nil {
		return nil, err
	}
	w, err := decodeWell(raw)
	if err != nil {
		return nil, fmt.Errorf("decode well: %w", err)
	}
	return &w, nil
}

func (c *httpClient) EditWell(ctx context.Context, token string, w entities.Well) error {
	return c.do(ctx, http.MethodPut, "/api/wells/"+strconv.FormatUint(uint64(w.ID), 10), token, encodeWell(w), nil)
}

func (c *httpClient) DeleteWell(ctx context.Context, token string, id uint) error {
	return c.do(ctx, http.MethodDelete, "/api/wells/"+strconv.FormatUint(uint64(id), 10), token, nil, nil)
}

func (c *httpClient) WellStats(ctx context.Context, token string, id uint) (WellStats, error) {
	var out WellStats
	err := c.do(ctx, http.MethodGet, "/api/wells/"+strconv.FormatUint(uint64(id), 10)+"/stats", token, nil, &out)
	return out, err
}

func (c *httpClient) RegisterDeviceToken(ctx context.Context, token string, d DeviceRegistration) error {
	return c.do(ctx, http.MethodPost, "/api/device-tokens", token, d, nil)
}

func (c *httpClient) UnregisterDeviceToken(ctx context.Context, token, value string) error {
	return c.do(ctx, http.MethodDelete, "/api/device-tokens/"+url.PathEscape(value), token, nil, nil)
}

func (c *httpClient) SubmitBugReport(ctx context.Context, token string, r BugReport) error {
	return c.do(ctx, http.MethodPost, "/api/bug-reports", token, r, nil)
}

func (c *httpClient) Weather(ctx context.Context, token string, lat, lon float64) (WeatherReport, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	var out WeatherReport
	err := c.do(ctx, http.MethodGet, "/api/weather?"+q.Encode(), token, nil, &out)
	return out, err
}

func (c *httpClient) NearbyUsers(ctx context.Context, token string, lat, lon, radiusKM float64) ([]NearbyUser, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("radius", strconv.FormatFloat(radiusKM, 'f', -1, 64))
	var out []NearbyUser
	err := c.do(ctx, http.MethodGet, "/api/users/nearby?"+q.Encode(), token, nil, &out)
	return out, err
}

func (c *httpClient) ServerStatus(ctx context.Context) (ServerStatus, error) {
	var out ServerStatus
	err := c.do(ctx, http.MethodGet, "/api/status", "", nil, &out)
	return out, err
}
