package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Storage string

const (
	StorageMemory   Storage = "memory"
	StoragePostgres Storage = "postgres"
	StorageSQLite   Storage = "sqlite"
)

type Config struct {
	Port         string
	Storage      Storage
	DBDSN        string
	SQLitePath   string
	JWTSecret    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Si AuthVerifyURL está definido, los tokens se validan contra ese
	// servicio en lugar de JWTSecret.
	AuthVerifyURL string
	AuthAPIKey    string

	LogLevel  string
	LogFormat string
	AppName   string

	MCPOwnerID string
}

// Load lee .env (si existe) y después el entorno. Las variables ya definidas
// en el entorno tienen prioridad sobre .env.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	return FromEnv(os.Getenv)
}

// FromEnv arma la config a partir de getenv (inyectable en tests).
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:       envOr(getenv, "PORT", "8080"),
		DBDSN:      strings.TrimSpace(getenv("DB_DSN")),
		SQLitePath: envOr(getenv, "SQLITE_PATH", "daily-diet.db"),
		JWTSecret:  strings.TrimSpace(getenv("JWT_SECRET")),
		LogLevel:   getenv("LOG_LEVEL"),
		LogFormat:  getenv("LOG_FORMAT"),
		AppName:    envOr(getenv, "APP_NAME", "daily-diet"),
		MCPOwnerID: strings.TrimSpace(getenv("MCP_OWNER_ID")),

		AuthVerifyURL: strings.TrimSpace(getenv("AUTH_VERIFY_URL")),
		AuthAPIKey:    strings.TrimSpace(getenv("AUTH_API_KEY")),
	}

	var err error
	if cfg.ReadTimeout, err = durationOr(getenv, "READ_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = durationOr(getenv, "WRITE_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	// Sin STORAGE explícito: postgres si hay DSN, si no memoria (modo dev).
	cfg.Storage = Storage(strings.ToLower(strings.TrimSpace(getenv("STORAGE"))))
	if cfg.Storage == "" {
		cfg.Storage = StorageMemory
		if cfg.DBDSN != "" {
			cfg.Storage = StoragePostgres
		}
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if c.DBDSN == "" {
			return errors.New("config: STORAGE=postgres requires DB_DSN")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE %q (memory, postgres, sqlite)", c.Storage)
	}
	if c.AuthVerifyURL != "" {
		if u, err := url.ParseRequestURI(c.AuthVerifyURL); err != nil || u.Host == "" {
			return fmt.Errorf("config: invalid AUTH_VERIFY_URL %q", c.AuthVerifyURL)
		}
	}
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("config: PORT is empty")
	}
	return nil
}

// Addr es la dirección de escucha del server HTTP.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}

func envOr(getenv func(string) string, key, def string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return def
}

func durationOr(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("config: %s must be a positive duration, got %q", key, v)
	}
	return d, nil
}
