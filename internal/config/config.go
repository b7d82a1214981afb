package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env                string          `yaml:"env" env:"ENV" env-default:"local"`
	BookingHorizonDays int             `yaml:"booking_horizon_days" env:"BOOKING_HORIZON_DAYS" env-default:"365"`
	Log                LogConfig       `yaml:"log"`
	Tracing            TracingConfig   `yaml:"tracing"`
	HTTP               HTTPConfig      `yaml:"http"`
	Redis              RedisConfig     `yaml:"redis"`
	TourAPI            TourAPIConfig   `yaml:"tour_api"`
	RateLimit          RateLimitConfig `yaml:"rate_limit"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// TracingConfig points at the Jaeger collector. Collector accepts a bare
// host:port or a full URL; with Enabled false spans are produced but never
// exported.
type TracingConfig struct {
	Enabled   bool   `yaml:"enabled" env:"TRACING_ENABLED" env-default:"true"`
	Collector string `yaml:"collector" env:"TRACING_COLLECTOR" env-default:"localhost:14268"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST"`
	Port            int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// RedisConfig is optional: an empty Addr disables the token cache and every
// tour-list fetch performs the full credential exchange.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// TourAPIConfig carries the upstream endpoints and the fixed credential pair.
// Credentials are read once at startup and passed around explicitly.
type TourAPIConfig struct {
	TokenURL string        `yaml:"token_url" env:"TOURAPI_TOKEN_URL"`
	BaseURL  string        `yaml:"base_url" env:"TOURAPI_BASE_URL"`
	Username string        `yaml:"username" env:"TOURAPI_USERNAME"`
	Password string        `yaml:"password" env:"TOURAPI_PASSWORD"`
	Timeout  time.Duration `yaml:"timeout" env:"TOURAPI_TIMEOUT" env-default:"5s"`
}

type RateLimitConfig struct {
	RPS   int `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"5"`
	Burst int `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"10"`
}

func (c HTTPConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}
	return MustLoadByPath(path)
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exists: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read the config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	if res == "" {
		res = "config/local.yaml"
	}

	return res
}
