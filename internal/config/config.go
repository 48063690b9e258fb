// Package config reads the optional voidwatch.toml from the working
// directory. A missing file means defaults; a malformed file is an error.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"voidwatch/internal/prefs"
)

// Config captures everything the engine needs to know about its sources
// and on-disk layout.
type Config struct {
	// PrimaryURL serves the full world-state document.
	PrimaryURL string
	// FallbackBase is the aggregator API root; per-entity endpoints hang
	// off it.
	FallbackBase string
	// DataDir holds the raw cached documents.
	DataDir string
	// PrefsPath is the binary preferences file.
	PrefsPath string
}

const (
	defaultConfigPath   = "voidwatch.toml"
	defaultPrimaryURL   = "https://content.warframe.com/dynamic/worldState.php"
	defaultFallbackBase = "https://api.warframestat.us/pc"
	defaultDataDir      = "data"
)

// Load parses the config file, falling back to defaults when it is missing.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}

	cfg := defaults()

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		PrimaryURL   string `toml:"primary_url"`
		FallbackBase string `toml:"fallback_base"`
		DataDir      string `toml:"data_dir"`
		PrefsPath    string `toml:"prefs_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.PrimaryURL); v != "" {
		cfg.PrimaryURL = v
	}
	if v := strings.TrimSpace(raw.FallbackBase); v != "" {
		cfg.FallbackBase = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		cfg.DataDir = v
	}
	if v := strings.TrimSpace(raw.PrefsPath); v != "" {
		cfg.PrefsPath = v
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		PrimaryURL:   defaultPrimaryURL,
		FallbackBase: defaultFallbackBase,
		DataDir:      defaultDataDir,
		PrefsPath:    prefs.DefaultFileName,
	}
}

// FissuresURL is the fallback endpoint for the fissure list.
func (c Config) FissuresURL() string { return c.FallbackBase + "/fissures" }

// CetusCycleURL is the fallback endpoint for the day/night cycle.
func (c Config) CetusCycleURL() string { return c.FallbackBase + "/cetusCycle" }

// InvasionsURL is the fallback endpoint for the invasion list.
func (c Config) InvasionsURL() string { return c.FallbackBase + "/invasions" }
