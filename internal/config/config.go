package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/chemocompanion/internal/db"
	"github.com/terraincognita07/chemocompanion/internal/logger"
	"gopkg.in/yaml.v3"
)

const (
	appDirName           = "chemocompanion"
	configFileName       = "config.yaml"
	DefaultUpcomingLimit = 2
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	DBPath        string `yaml:"db_path"`
	Timezone      string `yaml:"timezone"`
	LogDir        string `yaml:"log_dir"`
	Debug         bool   `yaml:"debug"`
	UpcomingLimit int    `yaml:"upcoming_limit"`
}

func Default() (Config, error) {
	dbPath, err := db.DefaultDBPath()
	if err != nil {
		return Config{}, err
	}
	return Config{
		DBPath:        dbPath,
		Timezone:      "Local",
		LogDir:        filepath.Join(filepath.Dir(dbPath), "logs"),
		UpcomingLimit: DefaultUpcomingLimit,
	}, nil
}

func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(configDir, appDirName, configFileName), nil
}

// Load layers defaults, the YAML file and environment overrides, in that
// order. An explicit path must exist; the default path is optional.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path, err = DefaultPath()
		if err != nil {
			return Config{}, err
		}
	}

	if err := readFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.DBPath = getEnv("CHEMO_DB_PATH", cfg.DBPath)
	cfg.Timezone = getEnv("TZ", cfg.Timezone)
	cfg.LogDir = getEnv("CHEMO_LOG_DIR", cfg.LogDir)

	if raw := getEnv("CHEMO_DEBUG", ""); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: CHEMO_DEBUG=%q", ErrInvalidConfig, raw)
		}
		cfg.Debug = debug
	}
	if raw := getEnv("CHEMO_UPCOMING_LIMIT", ""); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: CHEMO_UPCOMING_LIMIT=%q", ErrInvalidConfig, raw)
		}
		cfg.UpcomingLimit = limit
	}
	return nil
}

func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DBPath) == "" {
		return fmt.Errorf("%w: db_path is required", ErrInvalidConfig)
	}
	if cfg.UpcomingLimit < 0 {
		return fmt.Errorf("%w: upcoming_limit must not be negative", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, cfg.Timezone, err)
	}
	return nil
}

// Location resolves the configured timezone, falling back to UTC.
func (cfg Config) Location() *time.Location {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to UTC", "timezone", cfg.Timezone)
		return time.UTC
	}
	return location
}

func (cfg Config) LoggerConfig() logger.Config {
	return logger.Config{Debug: cfg.Debug, LogDir: cfg.LogDir}
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
