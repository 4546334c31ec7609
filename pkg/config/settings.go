package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chartlayout/pkg/cache"
	"github.com/matzehuels/chartlayout/pkg/errors"
	"github.com/matzehuels/chartlayout/pkg/pipeline"
)

// AppName names the tool's config and cache directories.
const AppName = "chartlayout"

// EnvPrefix prefixes every environment variable ApplyEnv reads.
const EnvPrefix = "CHARTLAYOUT_"

// Duration is a time.Duration written as a string such as "12h".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Settings are the tool-wide defaults shared by the CLI and the server.
type Settings struct {
	Cache     cache.Config `toml:"cache"`
	CacheTTL  Duration     `toml:"cache_ttl"`
	Listen    string       `toml:"listen"`
	Formats   []string     `toml:"formats"`
	EnvWidth  float64      `toml:"env_width"`
	EnvHeight float64      `toml:"env_height"`
}

// DefaultSettings caches to the user cache directory and renders SVG.
func DefaultSettings() Settings {
	s := Settings{
		Cache:     cache.Config{Backend: cache.BackendNone},
		CacheTTL:  Duration{pipeline.DefaultTTL},
		Listen:    ":8080",
		Formats:   []string{pipeline.FormatSVG},
		EnvWidth:  pipeline.DefaultEnvWidth,
		EnvHeight: pipeline.DefaultEnvHeight,
	}
	if dir, err := DefaultCacheDir(); err == nil {
		s.Cache = cache.Config{Backend: cache.BackendFile, Dir: dir}
	}
	return s
}

// SettingsPath returns ~/.config/chartlayout/config.toml, honouring
// XDG_CONFIG_HOME.
func SettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// DefaultCacheDir returns the cache directory using XDG standard (~/.cache/chartlayout/).
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// LoadSettings reads path over DefaultSettings. A missing file is not an
// error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, errors.Wrap(errors.ErrCodeInternal, err, "read settings %s", path)
	}
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return s, invalid(err, "settings %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return s, errors.New(errors.ErrCodeInvalidConfig, "settings %s: unknown key %s", path, undecoded[0])
	}
	return s, s.Validate()
}

// ApplyEnv overrides settings from CHARTLAYOUT_* variables:
//
//	CHARTLAYOUT_CACHE           backend: none, file, redis or mongo
//	CHARTLAYOUT_CACHE_DIR       file cache directory
//	CHARTLAYOUT_CACHE_URL       redis or mongo URL
//	CHARTLAYOUT_CACHE_DATABASE  mongo database
//	CHARTLAYOUT_CACHE_TTL       e.g. "6h"
//	CHARTLAYOUT_LISTEN          server address
//	CHARTLAYOUT_FORMATS         comma-separated output formats
//	CHARTLAYOUT_ENV_SIZE        container size, e.g. "1024x768"
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := get("CACHE"); ok {
		s.Cache.Backend = v
	}
	if v, ok := get("CACHE_DIR"); ok {
		s.Cache.Dir = v
	}
	if v, ok := get("CACHE_URL"); ok {
		s.Cache.URL = v
	}
	if v, ok := get("CACHE_DATABASE"); ok {
		s.Cache.Database = v
	}
	if v, ok := get("CACHE_TTL"); ok {
		if err := s.CacheTTL.UnmarshalText([]byte(v)); err != nil {
			return invalid(err, "%sCACHE_TTL", EnvPrefix)
		}
	}
	if v, ok := get("LISTEN"); ok {
		s.Listen = v
	}
	if v, ok := get("FORMATS"); ok {
		s.Formats = ParseList(v)
	}
	if v, ok := get("ENV_SIZE"); ok {
		w, h, err := ParseSize(v)
		if err != nil {
			return invalid(err, "%sENV_SIZE", EnvPrefix)
		}
		s.EnvWidth, s.EnvHeight = w, h
	}
	return s.Validate()
}

// Validate checks the settings for values no command could use.
func (s Settings) Validate() error {
	if s.CacheTTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache_ttl cannot be negative")
	}
	if err := pipeline.ValidateFormats(s.Formats); err != nil {
		return invalid(err, "formats")
	}
	if err := errors.ValidateDimension("env_width", s.EnvWidth); err != nil {
		return invalid(err, "env size")
	}
	if err := errors.ValidateDimension("env_height", s.EnvHeight); err != nil {
		return invalid(err, "env size")
	}
	return nil
}

// ParseList splits a comma-separated list, dropping empty items.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseSize parses "WIDTHxHEIGHT".
func ParseSize(s string) (float64, float64, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "size %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.ParseFloat(ws, 64)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "size %q: width", s)
	}
	h, err := strconv.ParseFloat(hs, 64)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "size %q: height", s)
	}
	if err := errors.ValidateDimension("width", w); err != nil {
		return 0, 0, err
	}
	if err := errors.ValidateDimension("height", h); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}
