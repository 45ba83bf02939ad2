package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the listener's process configuration, read from the environment.
// A .env file in the working directory is loaded first when present.
type Config struct {
	// Promptside API credential
	ClientID     string `env:"PS_CLIENT_ID,required"`
	ClientSecret string `env:"PS_CLIENT_SECRET,required"`
	Scope        string `env:"PS_SCOPE" envDefault:"core:sales self-service:sales"`
	Tenant       string `env:"PS_TENANT"`
	Environment  string `env:"PS_ENV" envDefault:"prod"`

	// HTTP server
	Port                int           `env:"LISTEN_PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	// Delivery log
	DatabaseFile         string        `env:"DATABASE_FILE" envDefault:"hooks.db"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
	DeliveryRetention    time.Duration `env:"DELIVERY_RETENTION" envDefault:"168h"`

	// Logging
	Verbose   bool   `env:"VERBOSE" envDefault:"false"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// LoadConfig reads configuration from the environment, after loading an
// optional .env file.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
