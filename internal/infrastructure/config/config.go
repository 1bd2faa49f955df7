package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
	Auth  AuthConfig
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=authcore"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type RedisConfig struct {
	Addr    string        `env:"REDIS_ADDR,    default=localhost:6379"`
	DB      int           `env:"REDIS_DB,      default=0"`
	Timeout time.Duration `env:"REDIS_TIMEOUT, default=5s"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=localhost"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM, default=no-reply@localhost"`
}

type AuthConfig struct {
	ResetTokenTTL          time.Duration `env:"AUTH_RESET_TOKEN_TTL, default=1h"`
	SessionTTL             time.Duration `env:"AUTH_SESSION_TTL,     default=24h"`
	ResetURLBase           string        `env:"AUTH_RESET_URL_BASE,  default=http://localhost:8080/reset"`
	RequireCurrentPassword bool          `env:"AUTH_REQUIRE_CURRENT_PASSWORD, default=false"`
	BcryptCost             int           `env:"AUTH_BCRYPT_COST,     default=10"`
	MailWorkers            int           `env:"AUTH_MAIL_WORKERS,    default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
