package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is loaded from the environment. The WhatsApp phone number is the
// checkout destination; leaving it unset disables checkout with an
// explicit error instead of producing a broken link.
type Config struct {
	HTTPPort      string `envconfig:"HTTP_PORT" default:"8080"`
	APIBaseURL    string `envconfig:"API_BASE_URL" default:"http://localhost:8000/api"`
	WhatsAppPhone string `envconfig:"WHATSAPP_PHONE"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`

	// CartStorage selects the persistence backend: sqlite (default),
	// redis, mongo, or memory.
	CartStorage string `envconfig:"CART_STORAGE" default:"sqlite"`
	SQLitePath  string `envconfig:"CART_SQLITE_PATH" default:"crafthaven.db"`
	RedisAddr   string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	MongoURI    string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDB     string `envconfig:"MONGO_DATABASE" default:"crafthaven"`

	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("crafthaven", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
