package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Weather WeatherConfig
	Worker  WorkerConfig
	DB      DatabaseConfig
	API     APIConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type WeatherConfig struct {
	BaseURL      string
	APIKey       string
	TTL          time.Duration
	FetchTimeout time.Duration
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

type DatabaseConfig struct {
	Path string
}

type APIConfig struct {
	RateLimitRPS int
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Weather: WeatherConfig{
			BaseURL:      getEnv("OPENWEATHER_URL", "https://api.openweathermap.org/data/2.5/weather"),
			APIKey:       getEnv("OPENWEATHER_API_KEY", ""),
			TTL:          getEnvDuration("WEATHER_TTL", 10*time.Minute),
			FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 20),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/flight-dispatch.db"),
		},
		API: APIConfig{
			RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 5),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Weather.APIKey == "" {
		return fmt.Errorf("OPENWEATHER_API_KEY must be set")
	}
	if c.Weather.TTL < time.Minute {
		return fmt.Errorf("weather TTL must be at least 1 minute")
	}
	if c.Weather.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
