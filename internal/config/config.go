// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

const (
	envAddr         = "CHESSBOARD_ADDR"
	envAllowOrigins = "CHESSBOARD_ALLOW_ORIGINS"
	envLogLevel     = "CHESSBOARD_LOG_LEVEL"
	envWSBuffer     = "CHESSBOARD_WS_BUFFER"
)

type Config struct {
	Addr         string
	AllowOrigins []string
	LogLevel     log.Level
	WSBufferSize int
}

func Default() Config {
	return Config{
		Addr:         ":3000",
		AllowOrigins: []string{"http://localhost:5173"},
		LogLevel:     log.LevelInfo,
		WSBufferSize: 1024,
	}
}

// Load starts from Default and applies any variables that are set.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(envAddr); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup(envAllowOrigins); ok && v != "" {
		cfg.AllowOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
			}
		}
	}
	if v, ok := lookup(envLogLevel); ok && v != "" {
		level, err := ParseLevel(v)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = level
	}
	if v, ok := lookup(envWSBuffer); ok && v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return Config{}, fmt.Errorf("%s: invalid buffer size %q", envWSBuffer, v)
		}
		cfg.WSBufferSize = size
	}
	return cfg, nil
}

// ParseLevel maps a level name to the fiber log level.
func ParseLevel(name string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("%s: unknown log level %q", envLogLevel, name)
}

// AllowOriginsHeader joins the origins the way the cors middleware expects.
func (c Config) AllowOriginsHeader() string {
	return strings.Join(c.AllowOrigins, ", ")
}
