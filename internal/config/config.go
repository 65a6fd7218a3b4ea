package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"wikigear/internal"
)

type Config struct {
	DataDir   string
	DBPath    string
	OutputDir string

	WikiBaseURL      string
	WikiUserAgent    string
	WikiRateLimitRPS int
	WikiTimeoutMs    int

	AutoExportXLSX     bool
	RefreshIntervalSec int

	APIAddr  string
	LogLevel string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DataDir:   getEnv("DATA_DIR", filepath.Join(cwd, "DB")),
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "wikigear.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		WikiBaseURL:      getEnv("WIKI_BASE_URL", "https://wiki.wizard101central.com"),
		WikiUserAgent:    getEnv("WIKI_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"),
		WikiRateLimitRPS: getEnvInt("WIKI_RATE_LIMIT_RPS", 2),
		WikiTimeoutMs:    getEnvInt("WIKI_TIMEOUT_MS", 30000),

		AutoExportXLSX:     getEnvBool("AUTO_EXPORT_XLSX", false),
		RefreshIntervalSec: getEnvInt("REFRESH_INTERVAL_SEC", 86400),

		APIAddr:  getEnv("API_ADDR", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

// CategoryDir is <data>/<Cat>/<Cat>_Data, the layout the published
// dataset already uses.
func (c Config) CategoryDir(cat internal.Category) string {
	name := string(cat)
	return filepath.Join(c.DataDir, name, name+"_Data")
}

func (c Config) LinksPath(cat internal.Category) string {
	return filepath.Join(c.CategoryDir(cat), string(cat)+"_URL.json")
}

func (c Config) RawPath(cat internal.Category) string {
	return filepath.Join(c.CategoryDir(cat), "RAW_"+string(cat)+"_Data.json")
}

func (c Config) FinalPath(cat internal.Category) string {
	return filepath.Join(c.CategoryDir(cat), string(cat)+"_Data.json")
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
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

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
