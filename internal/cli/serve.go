package cli

import (
	"fmt"

	"hirepulse/internal/catalog"
	"hirepulse/internal/config"
	"hirepulse/internal/server"
	"hirepulse/internal/session"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for candidate matching and interview scoring",
	Long: `Start an HTTP server that provides REST API endpoints for candidate
matching and interview scoring.

Available endpoints:
- POST /api/v1/match: Match a candidate profile against the position catalog
- POST /api/v1/score: Score a single interview response
- GET  /api/v1/companies: List companies in the catalog
- POST /api/v1/sessions: Open an interview session
- GET  /api/v1/sessions/{id}/score: Score a full interview session
- GET  /health: Health check endpoint
- GET  /stats: Server statistics and rate limiting info

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server, mutual
- Use --cert-file and --key-file for TLS certificates
- Use --ca-file for mutual TLS client certificate verification`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("catalog", "", "Catalog JSON file (default: built-in sample catalog)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled, server, mutual (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
	serveCmd.Flags().String("ca-file", "", "CA certificate file for client cert verification (PEM, overrides config)")

	// Bind flags to viper config keys
	bindFlag := func(key, flagName string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(flagName)); err != nil {
			panic(err)
		}
	}

	bindFlag("server.port", "port")
	bindFlag("server.host", "host")
	bindFlag("catalog.path", "catalog")
	bindFlag("server.tls.mode", "tls-mode")
	bindFlag("server.tls.certfile", "cert-file")
	bindFlag("server.tls.keyfile", "key-file")
	bindFlag("server.tls.cafile", "ca-file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Validate TLS configuration after applying overrides
	tempConfig := &config.Config{Server: cfg.Server}
	if err := tempConfig.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	// Load API keys from Vault when configured
	if err := config.ApplyVaultSecrets(cfg, logger); err != nil {
		return fmt.Errorf("failed to apply vault secrets: %w", err)
	}

	rubric, err := cfg.BuildRubric()
	if err != nil {
		return fmt.Errorf("failed to build scoring rubric: %w", err)
	}

	engine, err := cfg.BuildMatchEngine()
	if err != nil {
		return fmt.Errorf("failed to build matching engine: %w", err)
	}

	provider, err := catalog.NewProvider(cfg.Catalog.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	store := session.NewStore(cfg.Session.TTL, logger)

	serverCfg := server.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        Version,
		TLSConfig:      cfg.Server.TLS,
		APIKeys:        cfg.Server.APIKeys,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.App.MaxFileSize,
		RateLimit:      &cfg.Server.RateLimit,
	}

	components := server.Components{
		Rubric:   rubric,
		Engine:   engine,
		Catalog:  provider,
		Sessions: store,
	}

	return server.NewServer(cfg, serverCfg, components, logger).Start()
}
