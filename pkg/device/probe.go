// Package device reads a well controller directly over the local network,
// for installs where the agent and the ESP board share a LAN. The boards
// serve a small HTML status page at /, newer firmware also a /status.json.
package device

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

type Status struct {
	WaterLevel string            `json:"water_level"`
	Status     string            `json:"status"`
	Raw        map[string]string `json:"raw,omitempty"`
}

type Probe struct{ httpc *http.Client }

func NewProbe(timeout time.Duration) *Probe {
	return &Probe{httpc: &http.Client{Timeout: timeout}}
}

// Read makes one attempt against the device. HTML page first (all firmware
// has it), /status.json as fallback for pages goquery can't make sense of.
func (p *Probe) Read(ctx context.Context, ip string) (*Status, error) {
	st, err := p.readHTML(ctx, ip)
	if err == nil && (st.WaterLevel != "" || st.Status != "" || len(st.Raw) > 0) {
		return st, nil
	}
	jst, jerr := p.readJSON(ctx, ip)
	if jerr == nil {
		return jst, nil
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

func (p *Probe) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("device unreachable: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("device returned %s", resp.Status)
	}
	return resp, nil
}

// readHTML scrapes the status page: the boards render key/value pairs as
// two-cell table rows.
func (p *Probe) readHTML(ctx context.Context, ip string) (*Status, error) {
	resp, err := p.get(ctx, "http://"+ip+"/")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse device page: %w", err)
	}

	st := &Status{Raw: map[string]string{}}
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() < 2 {
			return
		}
		key := normalizeKey(cells.Eq(0).Text())
		val := strings.TrimSpace(cells.Eq(1).Text())
		if key == "" || val == "" {
			return
		}
		st.Raw[key] = val
	})
	st.WaterLevel = firstOf(st.Raw, "waterlevel", "level", "water")
	st.Status = firstOf(st.Raw, "status", "state")
	return st, nil
}

func (p *Probe) readJSON(ctx context.Context, ip string) (*Status, error) {
	resp, err := p.get(ctx, "http://"+ip+"/status.json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode device json: %w", err)
	}
	st := &Status{Raw: map[string]string{}}
	for k, v := range raw {
		st.Raw[normalizeKey(k)] = fmt.Sprint(v)
	}
	st.WaterLevel = firstOf(st.Raw, "waterlevel", "level", "water")
	st.Status = firstOf(st.Raw, "status", "state")
	return st, nil
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, ":")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func firstOf(m map[string]string, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return ""
}
