package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries all process-level settings. It is built once in main and
// handed to each component at construction; nothing here is mutated after
// Load returns.
type Config struct {
	Port string

	// DBDriver selects the embedded store: "sqlite3" (default) or "postgres".
	DBDriver string
	// SQLitePath is the database file used with the sqlite3 driver.
	SQLitePath string

	// PostgreSQL settings, used only when DBDriver is "postgres".
	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGName     string
	PGSSLMode  string

	// StateName is the default state filter for district listings.
	StateName string

	// NearestMetric picks the distance function for nearest-district
	// lookups: "haversine" (default) or "euclidean".
	NearestMetric string

	// CacheTTLSeconds is the lifetime of precomputed comparison aggregates
	// in the analytics cache table.
	CacheTTLSeconds int
}

// LoadEnv loads environment variables from a .env file when one is present.
// A missing file is not an error; variables already set in the environment
// always win.
func LoadEnv() error {
	for _, path := range []string{".env", "../.env", os.Getenv("MGNREGA_ENV")} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			log.Printf("Loading environment variables from %s", path)
			return godotenv.Load(path)
		}
	}
	return nil
}

// Load assembles the configuration from the environment.
func Load() *Config {
	return &Config{
		Port:            getEnvWithDefault("PORT", "8080"),
		DBDriver:        getEnvWithDefault("DB_DRIVER", "sqlite3"),
		SQLitePath:      getEnvWithDefault("DB_PATH", "database/mgnrega.db"),
		PGHost:          getEnvWithDefault("DB_HOST", "localhost"),
		PGPort:          getEnvWithDefault("DB_PORT", "5432"),
		PGUser:          getEnvWithDefault("DB_USER", "postgres"),
		PGPassword:      getEnvWithDefault("DB_PASSWORD", ""),
		PGName:          getEnvWithDefault("DB_NAME", "mgnrega"),
		PGSSLMode:       getEnvWithDefault("DB_SSL_MODE", "disable"),
		StateName:       getEnvWithDefault("STATE_NAME", "Gujarat"),
		NearestMetric:   getEnvWithDefault("NEAREST_METRIC", "haversine"),
		CacheTTLSeconds: getEnvAsInt("CACHE_TTL_SECONDS", 3600),
	}
}

// PostgresConnString builds the lib/pq connection string.
func (c *Config) PostgresConnString() string {
	return "host=" + c.PGHost + " port=" + c.PGPort + " user=" + c.PGUser +
		" password=" + c.PGPassword + " dbname=" + c.PGName + " sslmode=" + c.PGSSLMode
}

// Helper functions
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
