package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// GCalConfig controls the Google Calendar event feed.
type GCalConfig struct {
	Enabled         bool   `yaml:"enabled"`
	CalendarID      string `yaml:"calendar"`
	CredentialsFile string `yaml:"credentials"`
	TokenFile       string `yaml:"token"`
}

// Config holds the runtime settings of the adapta binary.
type Config struct {
	DBPath            string     `yaml:"db"`
	LogUseCases       bool       `yaml:"log_use_cases"`
	LogFormat         string     `yaml:"log_format"`
	Timezone          string     `yaml:"timezone"`
	DefaultMeetingMin int        `yaml:"default_meeting_min"`
	GCal              GCalConfig `yaml:"gcal"`
}

// Default returns the configuration used when nothing is set. Paths live
// under ~/.adapta.
func Default() Config {
	dir := homeDir()
	return Config{
		DBPath:            filepath.Join(dir, "adapta.db"),
		LogFormat:         "text",
		Timezone:          "Local",
		DefaultMeetingMin: 60,
		GCal: GCalConfig{
			CalendarID:      "primary",
			CredentialsFile: filepath.Join(dir, "credentials.json"),
			TokenFile:       filepath.Join(dir, "token.json"),
		},
	}
}

// Load builds the configuration from defaults, the YAML file named by
// ADAPTA_CONFIG (or ~/.adapta/config.yaml), a .env file in the working
// directory and finally the environment. Later sources win; variables
// already present in the environment are not overwritten by .env.
func Load() (Config, error) {
	path := os.Getenv("ADAPTA_CONFIG")
	if path == "" {
		path = filepath.Join(homeDir(), "config.yaml")
	}
	return LoadFrom(path, ".env")
}

// LoadFrom is Load with explicit file locations. Missing files are skipped.
func LoadFrom(configPath, envFile string) (Config, error) {
	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config file %s: %w", configPath, err)
			}
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if _, err := cfg.Location(); err != nil {
		return cfg, err
	}
	if cfg.DefaultMeetingMin <= 0 {
		return cfg, fmt.Errorf("default meeting duration must be positive, got %d", cfg.DefaultMeetingMin)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return cfg, fmt.Errorf("invalid log format %q (expected text or json)", cfg.LogFormat)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("ADAPTA_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("ADAPTA_LOG_USE_CASES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid ADAPTA_LOG_USE_CASES %q: %w", v, err)
		}
		cfg.LogUseCases = b
	}
	if v := os.Getenv("ADAPTA_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("ADAPTA_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("ADAPTA_DEFAULT_MEETING_MIN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ADAPTA_DEFAULT_MEETING_MIN %q: %w", v, err)
		}
		cfg.DefaultMeetingMin = n
	}
	if v := os.Getenv("ADAPTA_GCAL_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid ADAPTA_GCAL_ENABLED %q: %w", v, err)
		}
		cfg.GCal.Enabled = b
	}
	if v := os.Getenv("ADAPTA_GCAL_CALENDAR"); v != "" {
		cfg.GCal.CalendarID = v
	}
	if v := os.Getenv("ADAPTA_GCAL_CREDENTIALS"); v != "" {
		cfg.GCal.CredentialsFile = v
	}
	if v := os.Getenv("ADAPTA_GCAL_TOKEN"); v != "" {
		cfg.GCal.TokenFile = v
	}
	return nil
}

// Location resolves Timezone. "Local" and "" select the system zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// DefaultMeetingDuration returns DefaultMeetingMin as a duration.
func (c Config) DefaultMeetingDuration() time.Duration {
	return time.Duration(c.DefaultMeetingMin) * time.Minute
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".adapta"
	}
	return filepath.Join(home, ".adapta")
}
