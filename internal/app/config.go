package app

import (
	"fmt"
	"os"
	"strings"
)

const (
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config is read once from the environment (a .env file is loaded by the
// binaries before this runs).
type Config struct {
	Port            string
	LogMode         string
	StoreDriver     string
	PostgresDSN     string
	SQLitePath      string
	DefaultCurrency string
}

func LoadConfig() (Config, error) {
	cfg := Config{
		Port:            getenvDefault("PORT", "8080"),
		LogMode:         getenvDefault("LOG_MODE", "dev"),
		StoreDriver:     strings.ToLower(getenvDefault("STORE_DRIVER", StoreDynamoDB)),
		PostgresDSN:     os.Getenv("POSTGRES_DSN"),
		SQLitePath:      getenvDefault("SQLITE_PATH", "quote_rollup.db"),
		DefaultCurrency: strings.ToUpper(getenvDefault("ROLLUP_DEFAULT_CURRENCY", "USD")),
	}

	switch cfg.StoreDriver {
	case StoreDynamoDB, StoreSQLite:
	case StorePostgres:
		if cfg.PostgresDSN == "" {
			return Config{}, fmt.Errorf("POSTGRES_DSN is required when STORE_DRIVER=%s", StorePostgres)
		}
	default:
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
