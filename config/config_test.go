package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/enverbisevac/restmodel/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "client.yaml", `
base_url: https://reqres.in/api
timeout_seconds: 5
raise_for_status: true
headers:
  authorization: Bearer token
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://reqres.in/api", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.RaiseForStatus)
	assert.False(t, cfg.RequestID)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, map[string]string{"authorization": "Bearer token"}, cfg.Headers)
}

func TestLoad_Env(t *testing.T) {
	path := writeFile(t, "client.yaml", "base_url: https://reqres.in/api\n")
	t.Setenv("RESTMODEL_BASE_URL", "https://example.com/v2")
	t.Setenv("RESTMODEL_REQUEST_ID", "true")
	t.Setenv("RESTMODEL_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/v2", cfg.BaseURL)
	assert.True(t, cfg.RequestID)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeFile(t, "client.yaml", `
base_url: reqres.in
timeout_seconds: -1
log_level: loud
`)

	_, err := Load(path)
	verr, ok := errors.AsValidation(err)
	require.True(t, ok)

	fields := map[string]bool{}
	for _, f := range verr.Fields() {
		fields[f.Field] = true
	}
	assert.Equal(t, map[string]bool{"base_url": true, "timeout_seconds": true, "log_level": true}, fields)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load("")
	assert.True(t, errors.IsValidation(err))
}

func TestNewClient(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := &Config{
		BaseURL:        srv.URL,
		Timeout:        time.Second,
		Headers:        map[string]string{"Authorization": "Bearer token"},
		RaiseForStatus: true,
		RequestID:      true,
		LogLevel:       "error",
	}

	c, err := NewClient(cfg)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, c.BaseURL())

	resp, err := c.Get(context.Background(), "/users/23", nil)
	require.NotNil(t, resp)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, "Bearer token", got.Get("Authorization"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))

	_, err = NewClient(&Config{BaseURL: "ftp://x", LogLevel: "info"})
	assert.True(t, errors.IsValidation(err))
}

func TestValidate_LogLevel(t *testing.T) {
	for _, level := range []string{"", "debug", "INFO", " Warning ", "error"} {
		cfg := &Config{BaseURL: "https://reqres.in/api", LogLevel: level}
		assert.NoError(t, cfg.Validate(), level)
	}

	cfg := &Config{BaseURL: "https://reqres.in/api", LogLevel: "trace"}
	verr, ok := errors.AsValidation(cfg.Validate())
	require.True(t, ok)
	require.Len(t, verr.Fields(), 1)
	assert.Equal(t, "log_level", verr.Fields()[0].Field)
}
