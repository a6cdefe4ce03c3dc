package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"

	"hirepulse/internal/matching"
	"hirepulse/internal/scoring"
)

// Config holds all application configuration
// Secret Precedence Order:
// 1. Vault (if configured) - Highest priority
// 2. Config File values
// 3. Environment Variables (HIREPULSE_SERVER_APIKEYS, etc.)
// 4. Default values - Lowest priority
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Scoring       ScoringConfig       `mapstructure:"scoring"`
	Matching      MatchingConfig      `mapstructure:"matching"`
	Catalog       CatalogConfig       `mapstructure:"catalog"`
	Session       SessionConfig       `mapstructure:"session"`
	Vault         VaultConfig         `mapstructure:"vault"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// ScoringConfig holds response scoring configuration. Weights may
// override the built-in rubric per criterion name; overridden weights
// must still sum to 1.0, checked at load time.
type ScoringConfig struct {
	Weights                 map[string]float64 `mapstructure:"weights"`
	IncludeIndividualScores bool               `mapstructure:"includeIndividualScores"`
}

// MatchingConfig holds candidate/position matching configuration.
type MatchingConfig struct {
	Weights   matching.Weights `mapstructure:"weights"`
	Threshold float64          `mapstructure:"threshold"`
}

// CatalogConfig holds company catalog configuration. An empty path
// selects the built-in sample catalog.
type CatalogConfig struct {
	Path          string        `mapstructure:"path"`
	Watch         bool          `mapstructure:"watch"`
	DebounceDelay time.Duration `mapstructure:"debounceDelay"`
}

// SessionConfig holds interview session store configuration. A zero TTL
// keeps sessions until process exit.
type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout"`

	// TLS Configuration
	TLS TLSConfig `mapstructure:"tls"`

	// API Authentication
	APIKeys []string `mapstructure:"apiKeys"` // Valid API keys for authentication

	// Rate Limiting Configuration
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
}

// TLSConfig holds TLS/mTLS configuration
type TLSConfig struct {
	Mode     string `mapstructure:"mode"`     // TLS mode: "disabled", "server", "mutual"
	CertFile string `mapstructure:"certFile"` // Server certificate file (PEM)
	KeyFile  string `mapstructure:"keyFile"`  // Server private key file (PEM)
	CAFile   string `mapstructure:"caFile"`   // CA certificate file for client cert verification (PEM, required for mutual mode)

	MinVersion       string `mapstructure:"minVersion"`       // Minimum TLS version: "1.2", "1.3"
	ClientAuthPolicy string `mapstructure:"clientAuthPolicy"` // Client auth policy for mutual mode: "require", "request", "verify"
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`        // Enable/disable rate limiting
	RequestsPerMin int           `mapstructure:"requestsPerMin"` // Requests allowed per minute
	BurstCapacity  int           `mapstructure:"burstCapacity"`  // Burst capacity for token bucket
	ByIP           bool          `mapstructure:"byIP"`           // Enable per-IP rate limiting
	ByAPIKey       bool          `mapstructure:"byAPIKey"`       // Enable per-API-key rate limiting
	Window         time.Duration `mapstructure:"window"`         // Rate limiting window duration
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	MaxFileSize      int64    `mapstructure:"maxFileSize"`
}

// LoadConfig loads configuration from environment variables and a config file
func LoadConfig() (*Config, error) {
	log.Println("[CONFIG] Starting configuration loading process")

	v := viper.New()

	// Set default values
	setDefaults(v)
	log.Println("[CONFIG] Applied default configuration values")

	// Set up environment variable handling
	v.SetEnvPrefix("HIREPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	log.Println("[CONFIG] Configured environment variable handling with prefix 'HIREPULSE'")

	// Set up config file handling
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/hirepulse/")
	v.AddConfigPath("$HOME/.hirepulse")
	v.AddConfigPath(".")
	log.Println("[CONFIG] Configured config file search paths: /etc/hirepulse/, $HOME/.hirepulse, .")

	// Read the config file
	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("[CONFIG] No config file found, using defaults and environment variables")
	} else {
		configFileUsed = v.ConfigFileUsed()
		log.Printf("[CONFIG] Successfully loaded config file: %s", configFileUsed)
	}

	// Unmarshal the configuration into the Config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	log.Println("[CONFIG] Successfully unmarshaled configuration")

	// Apply environment variable fallbacks and derived defaults
	config.applyFallbacks()
	log.Println("[CONFIG] Applied configuration fallbacks and environment variable overrides")

	// Log configuration sources summary
	config.logConfigurationSources(configFileUsed)

	// Validate the configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("[CONFIG] Configuration loading completed successfully")
	return &config, nil
}

// Validate checks if the configuration is valid. Weight-sum violations
// in either engine are caught here so a bad deployment fails at
// startup, never per request.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	validFormats := make(map[string]bool)
	for _, format := range c.App.SupportedFormats {
		validFormats[format] = true
	}
	if !validFormats[c.App.DefaultFormat] {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}

	if err := c.Matching.Weights.Validate(); err != nil {
		return fmt.Errorf("matching configuration error: %w", err)
	}
	if c.Matching.Threshold < 0 || c.Matching.Threshold >= 1 {
		return fmt.Errorf("matching threshold %v outside [0, 1)", c.Matching.Threshold)
	}

	if _, err := c.BuildRubric(); err != nil {
		return fmt.Errorf("scoring configuration error: %w", err)
	}

	if c.Session.TTL < 0 {
		return fmt.Errorf("session TTL must not be negative")
	}

	// Validate TLS configuration
	if err := c.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("TLS configuration error: %w", err)
	}

	return nil
}

// BuildRubric constructs the scoring rubric with any configured weight
// overrides applied to the built-in criteria.
func (c *Config) BuildRubric() (*scoring.Rubric, error) {
	base := scoring.DefaultRubric().Criteria()

	if len(c.Scoring.Weights) == 0 {
		return scoring.NewRubric(base)
	}

	known := make(map[string]bool, len(base))
	criteria := make([]scoring.Criterion, len(base))
	for i, criterion := range base {
		if weight, ok := c.Scoring.Weights[criterion.Name]; ok {
			criterion.Weight = weight
		}
		known[criterion.Name] = true
		criteria[i] = criterion
	}

	for name := range c.Scoring.Weights {
		if !known[name] {
			return nil, fmt.Errorf("weight override for unknown criterion %q", name)
		}
	}

	return scoring.NewRubric(criteria)
}

// BuildMatchEngine constructs the matching engine from configuration.
func (c *Config) BuildMatchEngine() (*matching.Engine, error) {
	return matching.New(c.Matching.Weights, c.Matching.Threshold)
}

// Global configuration instance
var GlobalConfig *Config

// InitConfig initializes the global configuration
func InitConfig() error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}
	GlobalConfig = config
	return nil
}
