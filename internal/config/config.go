// Package config holds the launcher configuration that is built once at
// startup and passed explicitly to every component.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

const (
	FileName       = "launcher.toml"
	CompatLayerEnv = "YANIX_WINE"
	DebugEnv       = "YANIX_DEBUG"
)

type Presence struct {
	ClientID   string `toml:"client_id"`
	LargeImage string `toml:"large_image"`
	LargeText  string `toml:"large_text"`
	Enabled    bool   `toml:"enabled"`
}

type Links struct {
	Download  string `toml:"download"`
	Support   string `toml:"support"`
	Community string `toml:"community"`
	Blog      string `toml:"blog"`
}

type Config struct {
	DataDir     string   `toml:"-"`
	CompatLayer string   `toml:"compat_layer"`
	AuxTool     string   `toml:"aux_tool"`
	GameTitle   string   `toml:"game_title"`
	Version     string   `toml:"-"`
	Links       Links    `toml:"links"`
	Presence    Presence `toml:"presence"`
	Debug       bool     `toml:"debug"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		CompatLayer: "wine",
		AuxTool:     "winetricks",
		GameTitle:   "Yandere Simulator",
		Version:     "0.7",
		Links: Links{
			Download:  "https://yanderesimulator.com/dl/latest.zip",
			Support:   "https://github.com/NikoYandere/Yanix-Launcher/issues",
			Community: "https://discord.gg/7JC4FGn69U",
			Blog:      "https://yanix-launcher.blogspot.com",
		},
		Presence: Presence{
			Enabled:    true,
			ClientID:   "1383809366460989490",
			LargeImage: "yanix_logo",
			LargeText:  "Yanix Launcher",
		},
	}
}

// Load builds the configuration for dataDir: defaults, then an optional
// launcher.toml in dataDir, then environment overrides. A missing file is
// not an error.
func Load(afs afero.Fs, dataDir string) (*Config, error) {
	cfg := Defaults()
	cfg.DataDir = dataDir

	p := filepath.Join(dataDir, FileName)
	data, err := afero.ReadFile(afs, p)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", p, err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
	}

	applyEnv(&cfg)

	// empty values in the file would otherwise disable launching entirely
	def := Defaults()
	if cfg.CompatLayer == "" {
		cfg.CompatLayer = def.CompatLayer
	}
	if cfg.AuxTool == "" {
		cfg.AuxTool = def.AuxTool
	}
	if cfg.GameTitle == "" {
		cfg.GameTitle = def.GameTitle
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(CompatLayerEnv); v != "" {
		cfg.CompatLayer = v
	}
	if v := os.Getenv(DebugEnv); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
}
