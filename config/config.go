// Package config loads newscard settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds settings shared by the serve, render and feed commands.
type Config struct {
	Addr        string `toml:"addr"`
	Preset      string `toml:"preset"`
	PresetsFile string `toml:"presets_file"`
	FontsDir    string `toml:"fonts_dir"`
	Logo        string `toml:"logo"`
	LogLevel    string `toml:"log_level"`
	LogFile     string `toml:"log_file"`
	LogMaxSize  int    `toml:"log_max_size_mb"`

	Redis RedisConfig `toml:"redis"`
	Feed  FeedConfig  `toml:"feed"`
}

// RedisConfig enables the shared seen store when Addr is set.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Key      string `toml:"key"`
}

// FeedConfig describes the upstream article source.
type FeedConfig struct {
	URL       string   `toml:"url"`
	ItemsPath string   `toml:"items_path"`
	IDPath    string   `toml:"id_path"`
	TTL       Duration `toml:"ttl"`
	OutDir    string   `toml:"out_dir"`
}

// Duration lets TOML values like "24h" decode into time.Duration.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:       ":8080",
		Preset:     "classic",
		Logo:       "static/logo.png",
		LogLevel:   "info",
		LogMaxSize: 10,
		Redis:      RedisConfig{Key: "newscard:seen"},
		Feed: FeedConfig{
			IDPath: "id",
			TTL:    Duration{24 * time.Hour},
			OutDir: "output",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// PORT in the environment overrides the listen address.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("config %s: unknown key %s", path, undecoded[0])
		}
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	return cfg, nil
}
