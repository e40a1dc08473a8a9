package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	// Server configuration
	Server struct {
		Port string `env:"SERVER_PORT" envDefault:"5250"`
	}

	// Database configuration
	Database struct {
		Path string `env:"DATABASE_PATH" envDefault:"database/trovacasa.db"`
	}

	// Notifications configuration
	Notifications struct {
		// Minimum minutes between notifications for the same saved search (0 disables throttling)
		ThrottleWindowMinutes int `env:"NOTIFY_THROTTLE_MINUTES" envDefault:"60"`

		// Number of buffered property events awaiting the notification pipeline
		QueueSize int `env:"NOTIFY_QUEUE_SIZE" envDefault:"64"`

		// Path to the Firebase service-account credentials file; empty disables push
		FCMCredentialsFile string `env:"FCM_CREDENTIALS_FILE"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ThrottleWindow returns the configured throttle window as a duration.
func (c *Config) ThrottleWindow() time.Duration {
	return time.Duration(c.Notifications.ThrottleWindowMinutes) * time.Minute
}
