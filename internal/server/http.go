package server

import (
	"time"

	"hirepulse/internal/catalog"
	"hirepulse/internal/config"
	hirepulseErrors "hirepulse/internal/errors"
	"hirepulse/internal/matching"
	"hirepulse/internal/scoring"
	"hirepulse/internal/session"
)

// ScoreRequest is the request body for the single-response scoring endpoint.
type ScoreRequest struct {
	Text string `json:"text"`
}

// CreateSessionRequest is the request body for opening an interview session.
type CreateSessionRequest struct {
	CandidateName string `json:"candidate_name"`
	PositionID    string `json:"position_id,omitempty"`
	InterviewType string `json:"interview_type,omitempty"`
}

// TurnRequest is the request body for appending a turn to a session.
type TurnRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Domain components
	Rubric   *scoring.Rubric
	Engine   *matching.Engine
	Catalog  *catalog.Provider
	Sessions *session.Store

	// Catalog hot-reload
	CatalogWatcher *catalog.Watcher

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *hirepulseErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// Components groups the domain services the HTTP layer dispatches to.
// The scoring and matching engines are stateless; the catalog provider
// and session store carry their own synchronization.
type Components struct {
	Rubric   *scoring.Rubric
	Engine   *matching.Engine
	Catalog  *catalog.Provider
	Sessions *session.Store
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, components Components, logger *hirepulseErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		Rubric:         components.Rubric,
		Engine:         components.Engine,
		Catalog:        components.Catalog,
		Sessions:       components.Sessions,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
