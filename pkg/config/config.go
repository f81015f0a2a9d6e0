// Package config reads vellum's settings from the environment.
package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chazu/vellum/pkg/engine"
	"github.com/chazu/vellum/pkg/raster"
	"github.com/chazu/vellum/pkg/scene"
)

// Environment variable names.
const (
	EnvTrace       = "VELLUM_TRACE"
	EnvLogLevel    = "VELLUM_LOG_LEVEL"
	EnvEvalTimeout = "VELLUM_EVAL_TIMEOUT"
	EnvSeed        = "VELLUM_SEED"
	EnvRasterSize  = "VELLUM_RASTER_SIZE"
)

type Config struct {
	Trace       string // stdout, stderr, log or discard
	LogLevel    slog.Level
	EvalTimeout time.Duration
	SeedScript  string // optional script run in place of the built-in demo
	RasterSize  int
}

// Load reads the configuration from environment variables. Unset or
// malformed values fall back to their defaults.
func Load() *Config {
	return &Config{
		Trace:       strings.ToLower(getEnv(EnvTrace, "stdout")),
		LogLevel:    getEnvAsLevel(EnvLogLevel, slog.LevelWarn),
		EvalTimeout: getEnvAsDuration(EnvEvalTimeout, engine.DefaultEvalTimeout),
		SeedScript:  getEnv(EnvSeed, ""),
		RasterSize:  getEnvAsInt(EnvRasterSize, raster.DefaultSize),
	}
}

// TraceSink returns the sink named by Trace. Unknown names trace to stdout;
// "log" emits slog records on stderr.
func (c *Config) TraceSink(stdout, stderr io.Writer) scene.Sink {
	switch c.Trace {
	case "discard", "none", "off":
		return scene.Discard
	case "stderr":
		return scene.WriterSink(stderr)
	case "log":
		// LogLevel filters diagnostics only; trace records always pass.
		return scene.LogSink(slog.New(slog.NewTextHandler(stderr, nil)))
	default:
		return scene.WriterSink(stdout)
	}
}

// Logger returns a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil && intVal > 0 {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultVal
}

func getEnvAsLevel(key string, defaultVal slog.Level) slog.Level {
	if value := os.Getenv(key); value != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(value)); err == nil {
			return l
		}
	}
	return defaultVal
}
