package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EnvProduction = "production"

	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	APIPort   string `env:"PORT" envDefault:"3000"`
	APIPrefix string `env:"API_PREFIX" envDefault:"/api"`

	JWTKey string        `env:"JWT_SECRET,notEmpty"`
	JWTExp time.Duration `env:"JWT_EXPIRATION" envDefault:"1h"`

	StoreDriver   string `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURI      string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"jwt_auth"`
	DBConnStr     string `env:"DATABASE_URL"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	UserCacheTTL  time.Duration `env:"USER_CACHE_TTL" envDefault:"5m"`

	// Envelope mode wraps every issued token in a symmetric ciphertext.
	// Without a secret the key is random per process, so tokens do not
	// survive a restart.
	TokenEnvelope       bool   `env:"TOKEN_ENVELOPE" envDefault:"false"`
	TokenEnvelopeSecret string `env:"TOKEN_ENVELOPE_SECRET"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// Load reads an optional .env file, parses the environment and validates
// the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI is required for the mongo store")
		}
	case StorePostgres:
		if c.DBConnStr == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.JWTExp <= 0 {
		return errors.New("JWT_EXPIRATION must be positive")
	}
	return nil
}

// IsProduction reports whether schema bootstrap (indexes, migrations) must
// be skipped at start-up.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}
