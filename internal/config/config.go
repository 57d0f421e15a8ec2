package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const DefaultServerURL = "http://localhost:8000"

type AppConfig struct {
	ServerURL string
	TokenPath string
	CachePath string
	ExportDir string
	Open      string
	Debug     bool
	LogPath   string
}

// fileConfig is the optional TOML file at ~/.config/chatterm/config.toml.
type fileConfig struct {
	ServerURL string `toml:"server_url"`
	ExportDir string `toml:"export_dir"`
}

// Parse resolves configuration with flag > environment > config file >
// built-in default precedence. A .env in the working directory is loaded
// first so CHATTERM_* variables can live next to the project.
func Parse(args []string) (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}

	fileCfg, err := loadFile()
	if err != nil {
		return AppConfig{}, err
	}

	var cfg AppConfig
	flags := flag.NewFlagSet("chatterm", flag.ContinueOnError)
	flags.StringVar(&cfg.ServerURL, "server", defaultServerURL(fileCfg), "chat backend base URL")
	flags.StringVar(&cfg.TokenPath, "token-path", "", "path to the persisted session token")
	flags.StringVar(&cfg.CachePath, "cache-path", "", "path to the local SQLite cache")
	flags.StringVar(&cfg.ExportDir, "export-dir", fileCfg.ExportDir, "override transcript export directory")
	flags.StringVar(&cfg.Open, "open", "", "initial route, e.g. /chat/42")
	flags.BoolVar(&cfg.Debug, "debug", false, "write a debug log file")
	if err := flags.Parse(args); err != nil {
		return cfg, err
	}

	dataDir, err := defaultDataDir()
	if err != nil {
		return cfg, err
	}
	if cfg.TokenPath == "" {
		cfg.TokenPath = filepath.Join(dataDir, "token")
	}
	if cfg.CachePath == "" {
		cfg.CachePath = filepath.Join(dataDir, "cache.sqlite")
	}
	cfg.LogPath = filepath.Join(dataDir, "debug.log")

	for _, p := range []string{cfg.TokenPath, cfg.CachePath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			return cfg, fmt.Errorf("create data dir: %w", err)
		}
	}

	cfg.ServerURL = strings.TrimSuffix(strings.TrimSpace(cfg.ServerURL), "/")
	if cfg.ServerURL == "" {
		return cfg, errors.New("server URL must not be empty")
	}
	return cfg, nil
}

func defaultServerURL(fileCfg fileConfig) string {
	if fromEnv := strings.TrimSpace(os.Getenv("CHATTERM_SERVER")); fromEnv != "" {
		return fromEnv
	}
	if fileCfg.ServerURL != "" {
		return fileCfg.ServerURL
	}
	return DefaultServerURL
}

func loadFile() (fileConfig, error) {
	var cfg fileConfig
	dir, err := os.UserConfigDir()
	if err != nil {
		return cfg, nil
	}
	path := filepath.Join(dir, "chatterm", "config.toml")
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fileConfig{}, nil
		}
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.ServerURL = strings.TrimSpace(cfg.ServerURL)
	cfg.ExportDir = strings.TrimSpace(cfg.ExportDir)
	return cfg, nil
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "chatterm"), nil
}
