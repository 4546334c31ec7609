package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chartlayout/pkg/cache"
	"github.com/matzehuels/chartlayout/pkg/errors"
)

func TestDefaultSettings(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	s := DefaultSettings()
	assert.Equal(t, cache.Config{Backend: cache.BackendFile, Dir: "/tmp/xdg/chartlayout"}, s.Cache)
	assert.Equal(t, 24*time.Hour, s.CacheTTL.Duration)
	assert.Equal(t, []string{"svg"}, s.Formats)
	assert.NoError(t, s.Validate())
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()

	s, err := LoadSettings(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
cache_ttl = "6h"
listen = "127.0.0.1:9000"
formats = ["png", "json"]
env_width = 1024

[cache]
backend = "redis"
url = "redis://localhost:6379/0"
`), 0o644))

	s, err = LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 6*time.Hour, s.CacheTTL.Duration)
	assert.Equal(t, "127.0.0.1:9000", s.Listen)
	assert.Equal(t, []string{"png", "json"}, s.Formats)
	assert.Equal(t, 1024.0, s.EnvWidth)
	assert.Equal(t, 600.0, s.EnvHeight)
	assert.Equal(t, "redis", s.Cache.Backend)
	assert.Equal(t, "redis://localhost:6379/0", s.Cache.URL)

	require.NoError(t, os.WriteFile(path, []byte("colour = \"red\"\n"), 0o644))
	_, err = LoadSettings(path)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	require.NoError(t, os.WriteFile(path, []byte("formats = [\"gif\"]\n"), 0o644))
	_, err = LoadSettings(path)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	require.NoError(t, os.WriteFile(path, []byte("cache_ttl = \"soon\"\n"), 0o644))
	_, err = LoadSettings(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CHARTLAYOUT_CACHE":          "mongo",
		"CHARTLAYOUT_CACHE_URL":      "mongodb://localhost:27017",
		"CHARTLAYOUT_CACHE_DATABASE": "charts",
		"CHARTLAYOUT_CACHE_TTL":      "90m",
		"CHARTLAYOUT_LISTEN":         ":9090",
		"CHARTLAYOUT_FORMATS":        "svg, png,",
		"CHARTLAYOUT_ENV_SIZE":       "1024x768",
		"CHARTLAYOUT_CACHE_DIR":      "   ",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	s := DefaultSettings()
	dir := s.Cache.Dir
	require.NoError(t, s.ApplyEnv(lookup))
	assert.Equal(t, cache.Config{Backend: "mongo", Dir: dir, URL: "mongodb://localhost:27017", Database: "charts"}, s.Cache)
	assert.Equal(t, 90*time.Minute, s.CacheTTL.Duration)
	assert.Equal(t, ":9090", s.Listen)
	assert.Equal(t, []string{"svg", "png"}, s.Formats)
	assert.Equal(t, 1024.0, s.EnvWidth)
	assert.Equal(t, 768.0, s.EnvHeight)

	for k, v := range map[string]string{
		"CHARTLAYOUT_CACHE_TTL": "forever",
		"CHARTLAYOUT_ENV_SIZE":  "large",
		"CHARTLAYOUT_FORMATS":   "pdf",
	} {
		s := DefaultSettings()
		err := s.ApplyEnv(func(name string) (string, bool) {
			if name == k {
				return v, true
			}
			return "", false
		})
		assert.Error(t, err, k)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    float64
		wantErr bool
	}{
		{"800x600", 800, 600, false},
		{" 1024X768 ", 1024, 768, false},
		{"0x0", 0, 0, false},
		{"800", 0, 0, true},
		{"wide x tall", 0, 0, true},
		{"-1x5", 0, 0, true},
		{"NaNx5", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := ParseSize(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
		})
	}
}
