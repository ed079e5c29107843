package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Antivibe-Inc/face-labs-sub000/internal/analysis"
	"github.com/Antivibe-Inc/face-labs-sub000/internal/config"
	"github.com/Antivibe-Inc/face-labs-sub000/internal/storage"
	"github.com/Antivibe-Inc/face-labs-sub000/internal/storage/sqlite"
)

func startTestServer(t *testing.T, mode, token string) string {
	t.Helper()

	slots, err := sqlite.NewSlotStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = slots.Close() })

	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0 // pick a free port
	cfg.Security.Mode = mode
	cfg.Security.APIToken = token
	cfg.Security.RateLimit = 100
	cfg.Security.RateBurst = 200

	fallback := analysis.NewFallbackGenerator(1)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	addr, _ := Start(ctx, cfg, Deps{
		History:  storage.NewHistoryStore(slots),
		Settings: storage.NewSettingsStore(slots),
		Analyzer: analysis.NewService(nil, fallback),
		Dialogue: analysis.NewDialogueManager(nil, fallback),
	})

	// wait for the listener goroutine to start serving
	base := "http://" + addr
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/api/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	return base
}

func TestServer_HealthAndRecordRoundTrip(t *testing.T) {
	base := startTestServer(t, "development", "")

	body, _ := json.Marshal(map[string]interface{}{
		"assessment": map[string]interface{}{
			"energy_level":    7,
			"mood_brightness": 6,
			"tags":            []string{"平静"},
		},
		"thumbnail": "data:image/jpeg;base64,xxx",
	})
	resp, err := http.Post(base+"/api/records", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	listResp, err := http.Get(base + "/api/records")
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var list struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	assert.Equal(t, 1, list.Total)

	// security headers are applied to every response
	assert.Equal(t, "nosniff", listResp.Header.Get("X-Content-Type-Options"))
}

func TestServer_ProductionAuth(t *testing.T) {
	base := startTestServer(t, "production", "secret")

	resp, err := http.Get(base + "/api/records")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, base+"/api/records", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// health stays open
	resp, err = http.Get(base + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_UnknownAPIPathIs404(t *testing.T) {
	base := startTestServer(t, "development", "")
	resp, err := http.Get(base + "/api/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
