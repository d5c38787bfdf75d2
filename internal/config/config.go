package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	// Database
	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBHost     string `envconfig:"DB_HOST"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBName     string `envconfig:"DB_NAME"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	DBPath     string `envconfig:"DB_PATH" default:"users.db"` // sqlite only

	// Network
	HTTPAddress string `envconfig:"HTTP_ADDRESS" default:"0.0.0.0:5000"`
	GRPCAddress string `envconfig:"GRPC_ADDRESS" default:":50051"` // empty disables the health server

	// Observability
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	Debug          bool   `envconfig:"DEBUG" default:"false"`
}

// Load reads an optional .env file, then decodes the environment.
// Variables already present in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv decodes the configuration from the process environment only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		var missing []string
		if c.DBHost == "" {
			missing = append(missing, "DB_HOST")
		}
		if c.DBName == "" {
			missing = append(missing, "DB_NAME")
		}
		if len(missing) > 0 {
			return fmt.Errorf("%s must be set for the postgres driver", strings.Join(missing, ", "))
		}
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH must be set for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

// DSN composes the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.DBPath
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	if c.DBUser != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	}
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	db := c.DBPath
	if c.DBDriver == DriverPostgres {
		db = fmt.Sprintf("%s@%s/%s", c.DBUser, net.JoinHostPort(c.DBHost, c.DBPort), c.DBName)
	}
	return fmt.Sprintf("Config{DB: %s %s, HTTP: %s, gRPC: %s, Password: *** (masked) ***}",
		c.DBDriver, db, c.HTTPAddress, c.GRPCAddress)
}
