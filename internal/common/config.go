package common

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Docupipe DocupipeConfig `yaml:"docupipe"`
	Paths    PathsConfig    `yaml:"paths"`
	Dates    DatesConfig    `yaml:"dates"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// DocupipeConfig holds Docupipe API configuration
type DocupipeConfig struct {
	BaseURL      string        `yaml:"base_url"`
	APIKey       string        `yaml:"api_key"`
	PollInterval time.Duration `yaml:"poll_interval"`
	PollCeiling  time.Duration `yaml:"poll_ceiling"`
	MaxWait      time.Duration `yaml:"max_wait"`
	HTTPTimeout  time.Duration `yaml:"http_timeout"`
}

// PathsConfig holds filesystem locations
type PathsConfig struct {
	ImageDir   string `yaml:"image_dir"`
	OutputDir  string `yaml:"output_dir"`
	LedgerPath string `yaml:"ledger_path"`
}

// DatesConfig holds the date-resolution defaults the filename resolver
// falls back to when a filename carries no usable month information.
type DatesConfig struct {
	DefaultYear  int `yaml:"default_year"`
	DefaultMonth int `yaml:"default_month"`
}

// PipelineConfig holds batch behavior settings
type PipelineConfig struct {
	DocumentDelay time.Duration `yaml:"document_delay"`
}

// LoadConfig loads configuration from an optional YAML file, then applies
// environment variable overrides. A missing file is not an error; env and
// built-in defaults still apply.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, WrapError(err, "parse config file")
			}
		} else if !os.IsNotExist(err) {
			return nil, WrapError(err, "read config file")
		}
	}

	cfg.Docupipe.BaseURL = getEnv("DOCUPIPE_BASE_URL", defaultStr(cfg.Docupipe.BaseURL, "https://app.docupipe.ai"))
	cfg.Docupipe.APIKey = getEnv("API_KEY_DOCUPIPE", cfg.Docupipe.APIKey)
	cfg.Docupipe.PollInterval = getEnvAsDuration("DOCUPIPE_POLL_INTERVAL", defaultDur(cfg.Docupipe.PollInterval, 2*time.Second))
	cfg.Docupipe.PollCeiling = getEnvAsDuration("DOCUPIPE_POLL_CEILING", defaultDur(cfg.Docupipe.PollCeiling, 10*time.Second))
	cfg.Docupipe.MaxWait = getEnvAsDuration("DOCUPIPE_MAX_WAIT", defaultDur(cfg.Docupipe.MaxWait, 60*time.Second))
	cfg.Docupipe.HTTPTimeout = getEnvAsDuration("DOCUPIPE_HTTP_TIMEOUT", defaultDur(cfg.Docupipe.HTTPTimeout, 30*time.Second))

	cfg.Paths.ImageDir = getEnv("MENU_IMAGE_DIR", defaultStr(cfg.Paths.ImageDir, "./data/final_menu_download"))
	cfg.Paths.OutputDir = getEnv("MENU_OUTPUT_DIR", defaultStr(cfg.Paths.OutputDir, "./data/menu_results"))
	cfg.Paths.LedgerPath = getEnv("MENU_LEDGER_PATH", defaultStr(cfg.Paths.LedgerPath, "./data/menu_ledger.db"))

	cfg.Dates.DefaultYear = getEnvAsInt("MENU_DEFAULT_YEAR", defaultInt(cfg.Dates.DefaultYear, 2025))
	cfg.Dates.DefaultMonth = getEnvAsInt("MENU_DEFAULT_MONTH", defaultInt(cfg.Dates.DefaultMonth, 9))

	cfg.Pipeline.DocumentDelay = getEnvAsDuration("MENU_DOCUMENT_DELAY", defaultDur(cfg.Pipeline.DocumentDelay, 3*time.Second))

	return cfg, nil
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Docupipe.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "API_KEY_DOCUPIPE is required", ErrInvalidInput)
	}
	if c.Paths.ImageDir == "" {
		return NewAppError("CONFIG_ERROR", "MENU_IMAGE_DIR is required", ErrInvalidInput)
	}
	if c.Dates.DefaultMonth < 1 || c.Dates.DefaultMonth > 12 {
		return NewAppError("CONFIG_ERROR", "MENU_DEFAULT_MONTH must be 1-12", ErrInvalidInput)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func defaultStr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func defaultInt(v, fallback int) int {
	if v != 0 {
		return v
	}
	return fallback
}

func defaultDur(v, fallback time.Duration) time.Duration {
	if v != 0 {
		return v
	}
	return fallback
}
