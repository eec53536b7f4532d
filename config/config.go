package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the weekender system
type Config struct {
	General    GeneralConfig    `mapstructure:"general"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug          bool          `mapstructure:"debug"`
	LogLevel       string        `mapstructure:"log_level"`
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`
}

// LLMConfig contains reasoning-service provider settings
type LLMConfig struct {
	GoogleAPIKey string        `mapstructure:"google_api_key"`
	OpenAIAPIKey string        `mapstructure:"openai_api_key"`
	GeminiModel  string        `mapstructure:"gemini_model"`
	OpenAIModel  string        `mapstructure:"openai_model"`
	BaseURL      string        `mapstructure:"base_url"`
	Temperature  float64       `mapstructure:"temperature"`
	MaxTokens    int           `mapstructure:"max_tokens"`
	Timeout      time.Duration `mapstructure:"timeout"`

	// InsecureSkipVerify relaxes TLS verification on the provider client
	// only. It exists for hosts with a broken local trust store and is
	// scoped to the constructed client, never applied globally.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify"`
}

// EnrichmentConfig controls the best-effort venue address lookup
type EnrichmentConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	Timeout            time.Duration `mapstructure:"timeout"`
	MinPause           time.Duration `mapstructure:"min_pause"`
	MaxPause           time.Duration `mapstructure:"max_pause"`
	UseHeadless        bool          `mapstructure:"use_headless"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Addr      string `mapstructure:"addr"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

// StorageConfig contains persistence settings
type StorageConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	IndexDir string         `mapstructure:"index_dir"`
}

// PostgresConfig contains Postgres connection settings
type PostgresConfig struct {
	URL      string        `mapstructure:"url"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	DBName   string        `mapstructure:"dbname"`
	SSLMode  string        `mapstructure:"sslmode"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// TelemetryConfig contains monitoring settings
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DSN builds a Postgres connection string from the configured fields.
func (p PostgresConfig) DSN() (string, error) {
	if p.URL != "" {
		return p.URL, nil
	}
	if p.Host == "" || p.DBName == "" {
		return "", fmt.Errorf("postgres not configured (storage.postgres.host/dbname or url)")
	}
	port := p.Port
	if port == 0 {
		port = 5432
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", p.User, p.Password, p.Host, port, p.DBName, ssl), nil
}

// LoadConfig loads configuration from file and environment variables.
// The returned value is immutable by convention: it is built once at
// startup and passed by reference to every constructor.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("weekender")
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("WEEKENDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; defaults plus env cover the common case.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	overrideFromEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("general.debug", false)
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.default_timeout", "30s")

	v.SetDefault("llm.gemini_model", "gemini-2.0-flash")
	v.SetDefault("llm.openai_model", "gpt-4-turbo-preview")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.max_tokens", 4096)
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.insecure_skip_verify", false)

	v.SetDefault("enrichment.enabled", true)
	v.SetDefault("enrichment.timeout", "10s")
	v.SetDefault("enrichment.min_pause", "1s")
	v.SetDefault("enrichment.max_pause", "2s")
	v.SetDefault("enrichment.use_headless", false)
	v.SetDefault("enrichment.insecure_skip_verify", false)

	v.SetDefault("server.addr", ":10010")

	v.SetDefault("storage.postgres.port", 5432)
	v.SetDefault("storage.postgres.sslmode", "disable")
	v.SetDefault("storage.postgres.timeout", "5s")
	v.SetDefault("storage.redis.host", "")
	v.SetDefault("storage.redis.port", 6379)
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.timeout", "5s")
	v.SetDefault("storage.redis.ttl", "24h")
	v.SetDefault("storage.index_dir", "./data/index")

	v.SetDefault("telemetry.enabled", true)
}

// overrideFromEnv overrides configuration with well-known environment variables
func overrideFromEnv(v *viper.Viper) {
	if apiKey := os.Getenv("GOOGLE_API_KEY"); apiKey != "" {
		v.Set("llm.google_api_key", apiKey)
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		v.Set("llm.openai_api_key", apiKey)
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		v.Set("storage.postgres.url", url)
	}
	if host := os.Getenv("POSTGRES_HOST"); host != "" {
		v.Set("storage.postgres.host", host)
	}
	if port := os.Getenv("POSTGRES_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			v.Set("storage.postgres.port", p)
		}
	}
	if user := os.Getenv("POSTGRES_USER"); user != "" {
		v.Set("storage.postgres.user", user)
	}
	if pass := os.Getenv("POSTGRES_PASSWORD"); pass != "" {
		v.Set("storage.postgres.password", pass)
	}
	if db := os.Getenv("POSTGRES_DB"); db != "" {
		v.Set("storage.postgres.dbname", db)
	}

	if host := os.Getenv("REDIS_HOST"); host != "" {
		v.Set("storage.redis.host", host)
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			v.Set("storage.redis.port", p)
		}
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		v.Set("storage.redis.password", password)
	}

	if secret := os.Getenv("WEEKENDER_JWT_SECRET"); secret != "" {
		v.Set("server.jwt_secret", secret)
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	// Missing credentials are the only condition allowed to prevent a
	// run from starting.
	if cfg.LLM.GoogleAPIKey == "" && cfg.LLM.OpenAIAPIKey == "" {
		return fmt.Errorf("no LLM API key found: set GOOGLE_API_KEY or OPENAI_API_KEY")
	}
	if cfg.Enrichment.MinPause > cfg.Enrichment.MaxPause {
		return fmt.Errorf("enrichment.min_pause cannot exceed enrichment.max_pause")
	}
	return nil
}
