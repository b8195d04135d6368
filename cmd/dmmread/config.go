package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/arloliu/go-dmm/fs9721"
	"github.com/arloliu/go-dmm/logger"
)

// appConfig holds the effective dmmread settings after overlaying the config
// file and command-line flags onto the defaults.
type appConfig struct {
	Port     string
	Timeout  time.Duration
	Retries  int
	BaudRate int
	LogLevel string
}

func defaultConfig() appConfig {
	return appConfig{
		Timeout:  fs9721.DefaultTimeout,
		Retries:  fs9721.DefaultRetries,
		BaudRate: fs9721.DefaultBaudRate,
	}
}

// fileConfig is the dmmread config.toml key mapping.
type fileConfig struct {
	Port           string  `toml:"port"`
	TimeoutSeconds float64 `toml:"timeout_seconds"`
	Retries        int     `toml:"retries"`
	BaudRate       int     `toml:"baud_rate"`
	LogLevel       string  `toml:"log_level"`
}

// loadFileConfig overlays the TOML file at path onto cfg.
// Only keys present in the file override the current values.
func loadFileConfig(path string, cfg *appConfig) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("port") {
		cfg.Port = strings.TrimSpace(raw.Port)
	}
	if meta.IsDefined("timeout_seconds") {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds * float64(time.Second))
	}
	if meta.IsDefined("retries") {
		cfg.Retries = raw.Retries
	}
	if meta.IsDefined("baud_rate") {
		cfg.BaudRate = raw.BaudRate
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}

	return nil
}

func parseLogLevel(s string) (logger.Level, error) {
	switch s {
	case "debug":
		return logger.DebugLevel, nil
	case "info":
		return logger.InfoLevel, nil
	case "warn":
		return logger.WarnLevel, nil
	case "error":
		return logger.ErrorLevel, nil
	}

	return 0, fmt.Errorf("unknown log level %q", s)
}
