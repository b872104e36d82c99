package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		// Port the HTTP API listens on
		Port int `env:"SERVER_PORT" envDefault:"5250"`
	}

	// Database configuration
	Database struct {
		// Path to the sqlite archive database
		Path string `env:"DATABASE_PATH" envDefault:"database/evaluo.db"`
	}

	// Pricing configuration
	Pricing struct {
		// Whether the per-order surge fee is currently active
		SurgeActive bool `env:"PRICING_SURGE_ACTIVE" envDefault:"false"`
	}

	// Simulator configuration
	Simulator struct {
		// Whether the background lifecycle simulator runs at all
		Enabled bool `env:"SIMULATOR_ENABLED" envDefault:"true"`

		// Seconds between simulator ticks
		TickSeconds int `env:"SIMULATOR_TICK_SECONDS" envDefault:"20"`

		// Maximum random extra delay per advanced order (in seconds)
		JitterSeconds int `env:"SIMULATOR_JITTER_SECONDS" envDefault:"5"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
