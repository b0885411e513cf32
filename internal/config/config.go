package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	minSecretLen = 32
)

type Config struct {
	Env               string        `yaml:"env"`
	DBDSN             string        `yaml:"db_dsn"`
	DBName            string        `yaml:"db_name"`
	DBConnectAttempts int           `yaml:"db_connect_attempts"`
	ServerPort        string        `yaml:"server_port"`
	SessionSecret     string        `yaml:"session_secret"`
	SessionMaxAge     time.Duration `yaml:"session_max_age"`
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load reads .env, then CONFIG_FILE (yaml) if set, then the environment.
// In production a missing DSN or session secret is an error; there are no
// built-in credentials to fall back to.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Env, "APP_ENV")
	setString(&cfg.DBDSN, "DB_DSN")
	setString(&cfg.DBName, "DB_NAME")
	setString(&cfg.ServerPort, "SERVER_PORT")
	setString(&cfg.SessionSecret, "SESSION_SECRET")

	if v := os.Getenv("DB_CONNECT_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: DB_CONNECT_ATTEMPTS: %w", err)
		}
		cfg.DBConnectAttempts = n
	}
	if v := os.Getenv("SESSION_MAX_AGE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: SESSION_MAX_AGE: %w", err)
		}
		cfg.SessionMaxAge = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) finalize() error {
	if c.Env == "" {
		log.Println("WARNING: APP_ENV is not set, assuming development (insecure cookies, local defaults); set APP_ENV=production when deploying")
		c.Env = EnvDevelopment
	}
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("config: unknown APP_ENV %q", c.Env)
	}
	if c.ServerPort == "" {
		c.ServerPort = "8080"
	}
	if c.DBName == "" {
		c.DBName = "quizdb"
	}
	if c.DBConnectAttempts <= 0 {
		c.DBConnectAttempts = 10
	}
	if c.SessionMaxAge <= 0 {
		c.SessionMaxAge = 12 * time.Hour
	}

	if c.IsProduction() {
		if c.DBDSN == "" {
			return errors.New("config: DB_DSN is not set")
		}
		if c.SessionSecret == "" {
			return errors.New("config: SESSION_SECRET is not set")
		}
		if len(c.SessionSecret) < minSecretLen {
			return fmt.Errorf("config: SESSION_SECRET must be at least %d bytes", minSecretLen)
		}
		return nil
	}

	// development only
	if c.DBDSN == "" {
		c.DBDSN = "sqlite://quiz.db"
		log.Printf("WARNING: DB_DSN is not set, using %s", c.DBDSN)
	}
	if c.SessionSecret == "" {
		log.Println("WARNING: SESSION_SECRET is not set, using a random key (sessions end on restart)")
		c.SessionSecret = string(securecookie.GenerateRandomKey(minSecretLen))
	}
	return nil
}
