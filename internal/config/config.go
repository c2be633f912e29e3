package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort           = "8080"
	defaultBackendTimeout = 10 * time.Second
)

type Config struct {
	ProjectID        string
	Region           string
	Port             string
	LogLevel         string
	LogFormat        string
	BackendBaseURL   string
	BackendTimeout   time.Duration
	JWTSecret        string
	JWTSecretName    string
	PaymentReturnURL string
}

// New reads the environment. A .env file in the working directory is loaded first when
// present; variables already set in the environment take precedence over it.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		ProjectID:        os.Getenv("PROJECTID"),
		Region:           os.Getenv("REGION"),
		Port:             getOr("PORT", defaultPort),
		LogLevel:         os.Getenv("LOGLEVEL"),
		LogFormat:        os.Getenv("LOGFORMAT"),
		BackendBaseURL:   os.Getenv("BACKENDBASEURL"),
		JWTSecret:        os.Getenv("JWTSECRET"),
		JWTSecretName:    os.Getenv("JWTSECRETNAME"),
		PaymentReturnURL: os.Getenv("PAYMENTRETURNURL"),
	}

	timeout, err := getDuration("BACKENDTIMEOUT", defaultBackendTimeout)
	if err != nil {
		return nil, err
	}
	cfg.BackendTimeout = timeout

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.BackendBaseURL == "" {
		return errors.New("BACKENDBASEURL is required")
	}
	if c.JWTSecret == "" && c.JWTSecretName == "" {
		return errors.New("one of JWTSECRET or JWTSECRETNAME is required")
	}
	if c.JWTSecret == "" && c.ProjectID == "" {
		return errors.New("PROJECTID is required to read JWTSECRETNAME")
	}
	return nil
}

func getOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
