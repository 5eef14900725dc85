package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/robho/nobil-etl-service/internal/nobil"
)

// Config holds all service settings, populated from an optional yaml file
// with environment-variable overrides.
type Config struct {
	HTTPAddr        string        `yaml:"http_addr" env:"HTTP_ADDR" env-default:":8080"`
	LogLevel        string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat       string        `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`

	Nobil struct {
		APIKey            string        `yaml:"api_key" env:"NOBIL_API_KEY"`
		SearchURL         string        `yaml:"search_url" env:"NOBIL_SEARCH_URL" env-default:"https://nobil.no/api/server/search.php"`
		StatusURL         string        `yaml:"status_url" env:"NOBIL_STATUS_URL" env-default:"https://nobil.example.com"`
		Timeout           time.Duration `yaml:"timeout" env:"NOBIL_TIMEOUT" env-default:"30s"`
		RequestsPerSecond float64       `yaml:"requests_per_second" env:"NOBIL_REQUESTS_PER_SECOND" env-default:"2"`
		DataLicense       string        `yaml:"data_license" env:"NOBIL_DATA_LICENSE" env-default:"Norwegian Licence for Open Government Data (NLOD)"`
	} `yaml:"nobil"`

	Poll struct {
		Interval  time.Duration `yaml:"interval" env:"POLL_INTERVAL" env-default:"15m"`
		NorthEast string        `yaml:"northeast" env:"POLL_NORTHEAST" env-default:"(71.5, 31.5)"`
		SouthWest string        `yaml:"southwest" env:"POLL_SOUTHWEST" env-default:"(54.0, 4.0)"`
		Limit     int           `yaml:"limit" env:"POLL_LIMIT" env-default:"2000"`
	} `yaml:"poll"`

	Filters struct {
		MinPower      float64 `yaml:"min_power" env:"FILTER_MIN_POWER" env-default:"0"`
		MinConnectors int     `yaml:"min_connectors" env:"FILTER_MIN_CONNECTORS" env-default:"0"`
		FreeParking   bool    `yaml:"free_parking" env:"FILTER_FREE_PARKING" env-default:"false"`
		Open247       bool    `yaml:"open_247" env:"FILTER_OPEN_247" env-default:"false"`
	} `yaml:"filters"`

	Kafka struct {
		Enabled bool     `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"true"`
		Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-default:"localhost:9092"`
		Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"charging-stations"`
	} `yaml:"kafka"`

	Availability struct {
		Concurrency int           `yaml:"concurrency" env:"AVAILABILITY_CONCURRENCY" env-default:"8"`
		CacheTTL    time.Duration `yaml:"cache_ttl" env:"AVAILABILITY_CACHE_TTL" env-default:"30s"`
	} `yaml:"availability"`
}

// Load reads configuration from the given yaml file, or from the environment
// alone when path is empty, and validates it.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Nobil.APIKey == "" {
		return errors.New("NOBIL_API_KEY is required")
	}
	if c.Poll.Interval <= 0 {
		return errors.New("poll interval must be positive")
	}
	if _, err := nobil.ParseCoordinate(c.Poll.NorthEast); err != nil {
		return fmt.Errorf("poll northeast corner: %w", err)
	}
	if _, err := nobil.ParseCoordinate(c.Poll.SouthWest); err != nil {
		return fmt.Errorf("poll southwest corner: %w", err)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return errors.New("KAFKA_BROKERS is required when the kafka sink is enabled")
	}
	if c.Availability.Concurrency < 1 {
		return errors.New("availability concurrency must be at least 1")
	}
	return nil
}
