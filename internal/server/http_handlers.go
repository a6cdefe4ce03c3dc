package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"hirepulse/internal/errors"
	"hirepulse/internal/types"
)

// healthHandler reports service health including catalog and rubric status
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":  "healthy",
		"service": "hirepulse",
		"version": s.Version,
	}

	response["catalog"] = s.checkCatalogHealth()
	response["rubric"] = s.checkRubricHealth()
	response["sessions"] = map[string]any{
		"active": s.Sessions.Count(),
	}

	if s.CatalogWatcher != nil {
		response["catalog_watcher"] = map[string]any{
			"running": s.CatalogWatcher.IsRunning(),
		}
	}

	writeJSONResponse(w, response, s.Logger)
}

// checkCatalogHealth summarizes the current catalog snapshot
func (s *Server) checkCatalogHealth() map[string]any {
	companies := s.Catalog.Snapshot()

	positions := 0
	for _, company := range companies {
		positions += len(company.OpenPositions)
	}

	source := "builtin"
	if s.AppConfig.Catalog.Path != "" {
		source = s.AppConfig.Catalog.Path
	}

	return map[string]any{
		"healthy":   len(companies) > 0,
		"source":    source,
		"companies": len(companies),
		"positions": positions,
	}
}

// checkRubricHealth summarizes the loaded scoring rubric
func (s *Server) checkRubricHealth() map[string]any {
	criteria := s.Rubric.Criteria()

	names := make([]string, len(criteria))
	for i, criterion := range criteria {
		names[i] = criterion.Name
	}

	return map[string]any{
		"healthy":  len(criteria) > 0,
		"criteria": names,
	}
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"service": "hirepulse",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
		"sessions": map[string]any{
			"active": s.Sessions.Count(),
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	writeJSONResponse(w, response, s.Logger)
}

// listCompaniesHandler returns the current catalog snapshot
func (s *Server) listCompaniesHandler(w http.ResponseWriter, r *http.Request) {
	companies := s.Catalog.Snapshot()

	writeJSONResponse(w, map[string]any{
		"companies": companies,
		"total":     len(companies),
	}, s.Logger)
}

// getCompanyHandler returns a single company by id
func (s *Server) getCompanyHandler(w http.ResponseWriter, r *http.Request) {
	company, err := s.Catalog.Company(r.PathValue("id"))
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSONResponse(w, company, s.Logger)
}

// createSessionHandler opens a new interview session
func (s *Server) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := parseJSONRequest(r, &req); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	var metadata map[string]string
	if req.InterviewType != "" {
		metadata = map[string]string{"interview_type": req.InterviewType}
	}

	sess := s.Sessions.Create(req.CandidateName, req.PositionID, metadata)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"session_id": sess.ID,
		"created_at": sess.CreatedAt,
	}); err != nil {
		s.Logger.LogError(err, "Failed to encode session response")
	}
}

// getSessionHandler returns session metadata and the turn count
func (s *Server) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Get(r.PathValue("id"))
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSONResponse(w, map[string]any{
		"id":             sess.ID,
		"candidate_name": sess.CandidateName,
		"position_id":    sess.PositionID,
		"metadata":       sess.Metadata,
		"total_turns":    len(sess.Turns),
		"created_at":     sess.CreatedAt,
		"updated_at":     sess.UpdatedAt,
	}, s.Logger)
}

// appendTurnHandler appends a turn to an existing session
func (s *Server) appendTurnHandler(w http.ResponseWriter, r *http.Request) {
	var req TurnRequest
	if err := parseJSONRequest(r, &req); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	if req.Role != types.RoleCandidate && req.Role != types.RoleInterviewer {
		writeErrorResponse(w, "Invalid role",
			fmt.Sprintf("role must be %q or %q", types.RoleCandidate, types.RoleInterviewer),
			http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeErrorResponse(w, "Missing content", "content field is required", http.StatusBadRequest)
		return
	}

	sess, err := s.Sessions.AppendTurn(r.PathValue("id"), types.Turn{
		Role:    req.Role,
		Content: req.Content,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSONResponse(w, map[string]any{
		"session_id":  sess.ID,
		"total_turns": len(sess.Turns),
	}, s.Logger)
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeJSONResponse writes a JSON response body
func writeJSONResponse(w http.ResponseWriter, v any, logger *errors.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		if logger != nil {
			logger.LogError(err, "Failed to encode response")
		}
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// writeAppError maps an application error onto an HTTP status code
func writeAppError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Type {
		case errors.ErrorTypeNotFound:
			status = http.StatusNotFound
		case errors.ErrorTypeValidation:
			status = http.StatusBadRequest
		}
		writeErrorResponse(w, appErr.Message, appErr.Code, status)
		return
	}
	writeErrorResponse(w, "Internal server error", err.Error(), http.StatusInternalServerError)
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
