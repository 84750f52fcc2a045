package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Dataset    DatasetConfig
	Database   DatabaseConfig
	Pricing    PricingConfig
	Purchases  PurchasesConfig
	Classifier ClassifierConfig
	Bot        BotConfig
	Logging    LoggingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
	StaticDir      string // optional directory with a web front end served at /
}

// DatasetConfig selects where lots are loaded from. A non-empty Table reads
// the lots from the database instead of the CSV file.
type DatasetConfig struct {
	Path  string
	Table string
}

// DatabaseConfig holds the optional SQL connection used by the purchase
// ledger and the dataset table. An empty DSN disables both.
type DatabaseConfig struct {
	Driver             string
	DSN                string
	MaxConnections     int
	MaxIdleConnections int
}

// PricingConfig holds purchase pricing settings
type PricingConfig struct {
	ExchangeRate float64 // COP per USD
	Seed         uint64  // 0 seeds from the clock
}

// PurchasesConfig holds purchase ledger listing limits
type PurchasesConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// ClassifierConfig holds the intent model training settings
type ClassifierConfig struct {
	C             float64
	MaxIterations int
}

// BotConfig holds conversational defaults
type BotConfig struct {
	DefaultName string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
			StaticDir:      getEnv("STATIC_DIR", ""),
		},
		Dataset: DatasetConfig{
			Path:  getEnv("DATASET_PATH", "Dataset/colombian_coffee_dataset.csv"),
			Table: getEnv("DATASET_TABLE", ""),
		},
		Database: DatabaseConfig{
			Driver:             getEnv("DB_DRIVER", "postgres"),
			DSN:                getEnv("DATABASE_URL", getEnv("DB_DSN", "")),
			MaxConnections:     getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("DB_MAX_IDLE_CONNECTIONS", 2),
		},
		Pricing: PricingConfig{
			ExchangeRate: getEnvAsFloat("EXCHANGE_RATE_COP", 4000),
			Seed:         getEnvAsUint("PRICING_SEED", 0),
		},
		Purchases: PurchasesConfig{
			DefaultLimit: getEnvAsInt("PURCHASES_DEFAULT_LIMIT", 20),
			MaxLimit:     getEnvAsInt("PURCHASES_MAX_LIMIT", 100),
		},
		Classifier: ClassifierConfig{
			C:             getEnvAsFloat("CLASSIFIER_C", 10),
			MaxIterations: getEnvAsInt("CLASSIFIER_MAX_ITERATIONS", 500),
		},
		Bot: BotConfig{
			DefaultName: getEnv("BOT_DEFAULT_NAME", "amigo"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	if cfg.Purchases.MaxLimit < cfg.Purchases.DefaultLimit {
		logrus.Warnf("PURCHASES_MAX_LIMIT %d is below PURCHASES_DEFAULT_LIMIT, using %d",
			cfg.Purchases.MaxLimit, cfg.Purchases.DefaultLimit)
		cfg.Purchases.MaxLimit = cfg.Purchases.DefaultLimit
	}

	return cfg, nil
}

// LedgerEnabled reports whether a database connection is configured
func (c *Config) LedgerEnabled() bool {
	return strings.TrimSpace(c.Database.DSN) != ""
}

// Addr returns the host:port the HTTP server listens on
func (c *Config) Addr() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// SetupLogger configures the standard logrus logger
func (c *Config) SetupLogger() {
	ConfigureLogger(logrus.StandardLogger(), c.Logging)
}

// ConfigureLogger applies level and format settings to a logger
func ConfigureLogger(log *logrus.Logger, cfg LoggingConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		log.Warnf("Invalid log level %q, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		logrus.Warnf("Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsUint(key string, defaultValue uint64) uint64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		logrus.Warnf("Invalid unsigned value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		logrus.Warnf("Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
