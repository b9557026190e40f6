package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/kelseyhightower/envconfig"
	funk "github.com/thoas/go-funk"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
	Cache    *cacheConfig
	Events   *eventsConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"sqlite"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"roi-planner.db"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address                 string   `envconfig:"ROI_PLANNER_ADDRESS" default:":8000"`
	MetricsAddress          string   `envconfig:"ROI_PLANNER_METRICS_ADDRESS" default:":8080"`
	LogLevel                string   `envconfig:"ROI_PLANNER_LOG_LEVEL" default:"info"`
	LogFormat               string   `envconfig:"ROI_PLANNER_LOG_FORMAT" default:"console"`
	CorsOrigins             []string `envconfig:"ROI_PLANNER_CORS_ORIGINS" default:"*"`
	AutomatedCostPerInvoice float64  `envconfig:"ROI_PLANNER_AUTOMATED_COST_PER_INVOICE" default:"0"`
}

type cacheConfig struct {
	// RedisAddr selects the redis cache. The in-process cache is used when empty.
	RedisAddr     string `envconfig:"ROI_PLANNER_REDIS_ADDR" default:""`
	RedisPassword string `envconfig:"ROI_PLANNER_REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"ROI_PLANNER_REDIS_DB" default:"0"`
}

type eventsConfig struct {
	// File receives lead events as JSON lines. Events go to stdout when empty.
	File string `envconfig:"ROI_PLANNER_EVENTS_FILE" default:""`
}

var (
	supportedDBTypes    = []string{"sqlite", "pgsql"}
	supportedLogFormats = []string{"console", "json"}
)

// New processes the environment once and returns the same Config on every call.
func New() (*Config, error) {
	if singleConfig == nil {
		cfg, err := Load()
		if err != nil {
			return nil, err
		}
		singleConfig = cfg
	}
	return singleConfig, nil
}

// Load processes the environment into a new Config.
func Load() (*Config, error) {
	cfg := NewDefault()
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type: "sqlite",
			Port: "5432",
			Name: "roi-planner.db",
		},
		Service: &svcConfig{
			Address:        ":8000",
			MetricsAddress: ":8080",
			LogLevel:       "info",
			LogFormat:      "console",
			CorsOrigins:    []string{"*"},
		},
		Cache:  &cacheConfig{},
		Events: &eventsConfig{},
	}
}

func (c *Config) Validate() error {
	if !funk.ContainsString(supportedDBTypes, c.Database.Type) {
		return fmt.Errorf("unsupported database type %q, expected one of %s", c.Database.Type, strings.Join(supportedDBTypes, ", "))
	}
	if !funk.ContainsString(supportedLogFormats, c.Service.LogFormat) {
		return fmt.Errorf("unsupported log format %q, expected one of %s", c.Service.LogFormat, strings.Join(supportedLogFormats, ", "))
	}
	if cost := c.Service.AutomatedCostPerInvoice; math.IsNaN(cost) || math.IsInf(cost, 0) || cost < 0 {
		return fmt.Errorf("automated cost per invoice must be a finite non-negative number, got %v", cost)
	}
	return nil
}
