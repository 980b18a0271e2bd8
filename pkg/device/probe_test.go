package device

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statusPage = `<html><body>
<h1>WellConnect Controller</h1>
<table>
<tr><th>Water Level:</th><td>450</td></tr>
<tr><th>Status</th><td>active</td></tr>
<tr><th>Uptime</th><td>4d 02:11</td></tr>
</table>
</body></html>`

func hostOf(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	return strings.TrimPrefix(srv.URL, "http://")
}

func TestReadHTMLStatusPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(statusPage))
	}))
	defer srv.Close()

	p := NewProbe(time.Second)
	st, err := p.Read(context.Background(), hostOf(t, srv))
	require.NoError(t, err)
	assert.Equal(t, "450", st.WaterLevel)
	assert.Equal(t, "active", st.Status)
	assert.Equal(t, "4d 02:11", st.Raw["uptime"])
}

func TestReadFallsBackToJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			// old firmware serving an empty page
			_, _ = w.Write([]byte("<html><body>booting</body></html>"))
		case "/status.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"water_level": 450, "status": "standby"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewProbe(time.Second)
	st, err := p.Read(context.Background(), hostOf(t, srv))
	require.NoError(t, err)
	assert.Equal(t, "450", st.WaterLevel)
	assert.Equal(t, "standby", st.Status)
}

func TestReadUnreachableDevice(t *testing.T) {
	p := NewProbe(200 * time.Millisecond)
	_, err := p.Read(context.Background(), "127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device unreachable")
}
