package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"brokerage/internal/jobs"
	"brokerage/internal/pkg/errs"
	"brokerage/internal/pkg/retry"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	HTTPPort   string `yaml:"http_port"`
	DBHost     string `yaml:"db_host"`
	DBPort     string `yaml:"db_port"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBName     string `yaml:"db_name"`
	DBSslMode  string `yaml:"db_sslmode"`

	// StoreDriver selects the ledger store: postgres or memory.
	StoreDriver string `yaml:"store_driver"`
	// RedisURL enables lifecycle event publishing when set.
	RedisURL string `yaml:"redis_url"`

	ReadRetryAttempts  int           `yaml:"read_retry_attempts"`
	ReadRetryBaseDelay time.Duration `yaml:"read_retry_base_delay"`
	ReadRetryMaxDelay  time.Duration `yaml:"read_retry_max_delay"`

	// HistoryCheckSchedule is a cron expression with a seconds field.
	HistoryCheckSchedule string `yaml:"history_check_schedule"`
}

func DefaultConfig() Config {
	r := retry.DefaultConfig()
	return Config{
		HTTPPort:             "8080",
		DBPort:               "5432",
		DBSslMode:            "disable",
		StoreDriver:          StorePostgres,
		ReadRetryAttempts:    r.MaxAttempts,
		ReadRetryBaseDelay:   r.BaseDelay,
		ReadRetryMaxDelay:    r.MaxDelay,
		HistoryCheckSchedule: jobs.DefaultHistorySchedule,
	}
}

// LoadConfig layers, lowest first: defaults, the .env file, the process
// environment, then the YAML file at path when path is not empty. A missing
// .env file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.HTTPPort, "HTTP_PORT")
	setString(&c.DBHost, "DB_HOST")
	setString(&c.DBPort, "DB_PORT")
	setString(&c.DBUser, "DB_USER")
	setString(&c.DBPassword, "DB_PASSWORD")
	setString(&c.DBName, "DB_NAME")
	setString(&c.DBSslMode, "DB_SSLMODE")
	setString(&c.StoreDriver, "STORE_DRIVER")
	setString(&c.RedisURL, "REDIS_URL")
	setString(&c.HistoryCheckSchedule, "HISTORY_CHECK_SCHEDULE")

	return errors.Join(
		setInt(&c.ReadRetryAttempts, "READ_RETRY_ATTEMPTS"),
		setDuration(&c.ReadRetryBaseDelay, "READ_RETRY_BASE_DELAY"),
		setDuration(&c.ReadRetryMaxDelay, "READ_RETRY_MAX_DELAY"),
	)
}

// Validate checks the settings the selected store driver needs.
func (c Config) Validate() error {
	var errList []error
	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if c.DBHost == "" {
			errList = append(errList, errs.NewValueIsRequiredError("DB_HOST"))
		}
		if c.DBName == "" {
			errList = append(errList, errs.NewValueIsRequiredError("DB_NAME"))
		}
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("STORE_DRIVER",
			fmt.Errorf("%q is neither %s nor %s", c.StoreDriver, StorePostgres, StoreMemory)))
	}
	if c.HTTPPort == "" {
		errList = append(errList, errs.NewValueIsRequiredError("HTTP_PORT"))
	}
	if c.ReadRetryAttempts < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("READ_RETRY_ATTEMPTS", c.ReadRetryAttempts, 1, nil))
	}
	return errors.Join(errList...)
}

func (c Config) Retry() retry.Config {
	return retry.Config{
		MaxAttempts: c.ReadRetryAttempts,
		BaseDelay:   c.ReadRetryBaseDelay,
		MaxDelay:    c.ReadRetryMaxDelay,
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	*dst = d
	return nil
}
