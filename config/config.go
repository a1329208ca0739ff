package config

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	BackendBaseURL    string `envconfig:"BACKEND_BASE_URL"        default:"http://localhost:8000"`
	GatewayPort       string `envconfig:"GATEWAY_PORT"            default:":3000"`
	LogLevel          string `envconfig:"LOG_LEVEL"               default:"info"`
	AppEnv            string `envconfig:"APP_ENV"                 default:"development"`
	SessionCookieName string `envconfig:"SESSION_COOKIE_NAME"     default:"session_token"`
	DefaultTimeoutSec int    `envconfig:"DEFAULT_TIMEOUT_SECONDS" default:"30"`
	ReportTimeoutSec  int    `envconfig:"REPORT_TIMEOUT_SECONDS"  default:"120"`
}

var (
	config Config
	once   sync.Once
)

func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		err = envconfig.Process("", &config)
		if err != nil {
			logger.Fatalf("Failed to process configuration from environment variables: %v", err)
		}

		logger.Infof("Configuration loaded: Backend=%s, Port=%s, LogLevel=%s, Env=%s",
			config.BackendBaseURL, config.GatewayPort, config.LogLevel, config.AppEnv)
	})
	return &config
}

// DefaultTimeout is the forwarding timeout for ordinary resource routes.
func (c *Config) DefaultTimeout() time.Duration {
	return time.Duration(c.DefaultTimeoutSec) * time.Second
}

// ReportTimeout covers report routes, which the backend can take minutes to build.
func (c *Config) ReportTimeout() time.Duration {
	return time.Duration(c.ReportTimeoutSec) * time.Second
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}
