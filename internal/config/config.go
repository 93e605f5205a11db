package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName        = "jobposter"
	ConfigFileName = "config.json"

	DefaultBaseURL = "https://job-poster-r0c5.onrender.com"
)

// Config contains client defaults. Timeouts are in seconds.
type Config struct {
	BaseURL          string `json:"base_url" env:"JOBPOSTER_BASE_URL" validate:"required,http_url"`
	ModulesTimeout   int    `json:"modules_timeout" env:"JOBPOSTER_MODULES_TIMEOUT" validate:"gt=0"`
	SubmitTimeout    int    `json:"submit_timeout" env:"JOBPOSTER_SUBMIT_TIMEOUT" validate:"gt=0"`
	HoldIfIncomplete bool   `json:"hold_if_incomplete" env:"JOBPOSTER_HOLD_IF_INCOMPLETE"`
	Proxy            string `json:"proxy" env:"JOBPOSTER_PROXY" validate:"omitempty,url"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL:          DefaultBaseURL,
		ModulesTimeout:   20,
		SubmitTimeout:    60,
		HoldIfIncomplete: true,
	}
}

func (c Config) ModulesTimeoutDuration() time.Duration {
	return time.Duration(c.ModulesTimeout) * time.Second
}

func (c Config) SubmitTimeoutDuration() time.Duration {
	return time.Duration(c.SubmitTimeout) * time.Second
}

// Validate checks field constraints declared in struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return fmt.Errorf("invalid config: %s failed %q check", first.Field(), first.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Load layers the config file and JOBPOSTER_* environment variables over the
// defaults, then validates the result.
func Load() (Config, error) {
	cfg := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}

	if err := loadFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	return json5.Unmarshal(data, cfg)
}

// Init writes a default config.json if one doesn't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
