package config

import (
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	JWTSecret      string `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	AccessKeyHash  string `envconfig:"ACCESS_KEY_HASH"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`

	PlaybackFPS       int     `envconfig:"PLAYBACK_FPS" default:"60"`
	CacheTolerance    float64 `envconfig:"CACHE_TOLERANCE" default:"50"`
	CacheSamples      int     `envconfig:"CACHE_SAMPLES" default:"120"`
	MinResamplePoints int     `envconfig:"MIN_RESAMPLE_POINTS" default:"100"`
	ResampleDivisor   int     `envconfig:"RESAMPLE_DIVISOR" default:"4"`
	PreviewMaxSize    int     `envconfig:"PREVIEW_MAX_SIZE" default:"2048"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Level maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
