package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	GRPC    GRPCConfig    `yaml:"grpc"`
	Redis   RedisConfig   `yaml:"redis"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Airport AirportConfig `yaml:"airport"`
	Log     LogConfig     `yaml:"log"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	EventsTopic        string   `yaml:"events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type AirportConfig struct {
	Name                 string  `yaml:"name"`
	Timezone             string  `yaml:"timezone"`
	DefaultCurrency      string  `yaml:"default_currency"`
	SupportEmail         string  `yaml:"support_email"`
	MaxBaggageWeightKG   float64 `yaml:"max_baggage_weight_kg"`
	SeatHoldTTLSeconds   int     `yaml:"seat_hold_ttl_seconds"`
	RouteCacheTTLSeconds int     `yaml:"route_cache_ttl_seconds"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when a key is absent from the file.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{Address: ":8080"},
		GRPC: GRPCConfig{Address: ":9090"},
		Kafka: KafkaConfig{
			EventsTopic:        "airport.events",
			NotificationsTopic: "airport.notifications",
			GroupID:            "airport-worker",
		},
		Airport: AirportConfig{
			Name:                 "Demo Airport",
			Timezone:             "UTC",
			DefaultCurrency:      "USD",
			SupportEmail:         "support@example.com",
			MaxBaggageWeightKG:   32.0,
			SeatHoldTTLSeconds:   600,
			RouteCacheTTLSeconds: 60,
		},
		Log: LogConfig{Level: "info"},
	}
}

func (c Config) Validate() error {
	if c.Airport.DefaultCurrency == "" {
		return errors.New("airport.default_currency is required")
	}
	if c.Airport.MaxBaggageWeightKG <= 0 {
		return errors.New("airport.max_baggage_weight_kg must be positive")
	}
	if c.HTTP.Address == "" {
		return errors.New("http.address is required")
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
