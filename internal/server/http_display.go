package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayCatalogInfo()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET  /health                        - Health check")
	fmt.Println("  GET  /stats                         - Server statistics")
	fmt.Println("  POST /api/v1/match                  - Match candidate against catalog (requires API key)")
	fmt.Println("  POST /api/v1/score                  - Score one interview response (requires API key)")
	fmt.Println("  GET  /api/v1/companies              - List companies")
	fmt.Println("  GET  /api/v1/companies/{id}         - Get one company")
	fmt.Println("  POST /api/v1/sessions               - Open interview session")
	fmt.Println("  GET  /api/v1/sessions/{id}          - Session metadata")
	fmt.Println("  POST /api/v1/sessions/{id}/turns    - Append conversation turn")
	fmt.Println("  GET  /api/v1/sessions/{id}/score    - Score the session")
}

// displayCatalogInfo shows catalog configuration
func (s *Server) displayCatalogInfo() {
	if s.AppConfig.Catalog.Path != "" {
		fmt.Printf("Catalog: %s\n", s.AppConfig.Catalog.Path)
		if s.CatalogWatcher != nil {
			fmt.Println("  - Hot reload enabled (file watcher)")
		}
	} else {
		fmt.Println("Catalog: built-in sample catalog")
	}
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Printf("API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Println("Include 'X-API-Key: <your-key>' header in requests to /api/v1 endpoints")
	} else {
		fmt.Println("API authentication: DISABLED (no API keys configured)")
		fmt.Println("WARNING: API endpoints are publicly accessible!")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
		fmt.Println("WARNING: No request size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Println("  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Println("  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Println("Rate limiting: DISABLED")
		fmt.Println("WARNING: No rate limiting configured!")
	}
}
