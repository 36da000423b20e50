package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures tagview runtime settings.
type Config struct {
	APIBind       string
	DiscoveryPath string
	PollInterval  time.Duration
	LogFile       string
	LogLevel      slog.Level
	MetricsAddr   string
}

const (
	defaultConfigPath    = "~/.config/tagview/config.toml"
	defaultAPIBind       = "127.0.0.1:5000"
	defaultDiscoveryPath = "/api/tags/discovery"
	defaultPollInterval  = 2 * time.Second
	defaultLogFile       = "~/.local/state/tagview/tagview.log"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBind:       defaultAPIBind,
		DiscoveryPath: defaultDiscoveryPath,
		PollInterval:  defaultPollInterval,
		LogFile:       mustExpand(defaultLogFile),
		LogLevel:      slog.LevelInfo,
	}
}

// Load locates and parses the tagview config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBind       string `toml:"api_bind"`
		DiscoveryPath string `toml:"discovery_path"`
		PollInterval  string `toml:"poll_interval"`
		LogFile       string `toml:"log_file"`
		LogLevel      string `toml:"log_level"`
		MetricsAddr   string `toml:"metrics_addr"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBind); v != "" {
		cfg.APIBind = v
	}
	if v := strings.TrimSpace(raw.DiscoveryPath); v != "" {
		cfg.DiscoveryPath = v
	}
	if v := strings.TrimSpace(raw.PollInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse poll_interval: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("parse poll_interval: must be positive, got %s", v)
		}
		cfg.PollInterval = d
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("parse log_level: %w", err)
		}
	}
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
