package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hirepulse/internal/observability"
	"hirepulse/internal/types"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// createMatchHandler wraps the matching handler with observability
func (s *Server) createMatchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("hirepulse.api")
		ctx, span := tracer.Start(ctx, "api.match")
		defer span.End()

		var profile types.CandidateProfile
		if err := parseJSONRequest(r, &profile); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(profile.Name) == "" {
			err := fmt.Errorf("missing candidate name")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing candidate name", "name field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(profile.Skills) == "" {
			err := fmt.Errorf("missing skills")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing skills", "skills field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.skills_length", len(profile.Skills)),
			attribute.String("request.work_type", profile.WorkType),
			attribute.String("operation", "match"),
		)

		catalog := s.Catalog.Snapshot()

		metrics := om.GetMetrics()
		var matches []types.MatchResult
		err := metrics.TrackScoringOperation(ctx, "match", func(ctx context.Context) error {
			matches = s.Engine.Match(profile, catalog)
			return nil
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "match_request", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to match candidate", err.Error(), http.StatusInternalServerError)
			return
		}

		response := types.MatchResponse{
			CandidateID:  uuid.NewString(),
			Matches:      matches,
			TotalMatches: len(matches),
			CreatedAt:    time.Now().UTC(),
		}

		metrics.RecordBusinessMetric(ctx, "match_request", true, om,
			attribute.Int("matches", len(matches)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.matches", len(matches)),
		)

		writeJSONResponse(w, response, s.Logger)
	}
}

// createScoreHandler wraps the single-response scoring handler with observability
func (s *Server) createScoreHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("hirepulse.api")
		ctx, span := tracer.Start(ctx, "api.score")
		defer span.End()

		var req ScoreRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Text) == "" {
			err := fmt.Errorf("missing response text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing response text", "text field is required", http.StatusBadRequest)
			return
		}

		if s.MaxRequestSize > 0 && len(req.Text) > int(s.MaxRequestSize) {
			err := fmt.Errorf("response text too large: %d chars", len(req.Text))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Response text too large",
				fmt.Sprintf("text exceeds size limit of %d characters", s.MaxRequestSize), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.text_length", len(req.Text)),
			attribute.String("operation", "score"),
		)

		metrics := om.GetMetrics()
		var result types.ResponseScore
		err := metrics.TrackScoringOperation(ctx, "score_response", func(ctx context.Context) error {
			result = s.Rubric.ScoreResponse(req.Text)
			return nil
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "response_scored", false, om)
			writeErrorResponse(w, "Failed to score response", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "response_scored", true, om,
			attribute.String("rating", result.Rating))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("response.overall_score", result.OverallScore),
			attribute.String("response.rating", result.Rating),
		)

		writeJSONResponse(w, result, s.Logger)
	}
}

// createSessionScoreHandler wraps the session scoring handler with observability
func (s *Server) createSessionScoreHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("hirepulse.api")
		ctx, span := tracer.Start(ctx, "api.session_score")
		defer span.End()

		id := r.PathValue("id")
		sess, err := s.Sessions.Get(id)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "not_found"))
			writeAppError(w, err)
			return
		}

		span.SetAttributes(
			attribute.String("session.id", id),
			attribute.Int("session.turns", len(sess.Turns)),
			attribute.String("operation", "score_session"),
		)

		// Scores are always computed from the full turn history; nothing
		// is cached between calls.
		metrics := om.GetMetrics()
		var result types.SessionScore
		trackErr := metrics.TrackScoringOperation(ctx, "score_session", func(ctx context.Context) error {
			result = s.Rubric.ScoreSession(sess.Turns)
			return nil
		}, om)

		if trackErr != nil {
			span.RecordError(trackErr)
			metrics.RecordBusinessMetric(ctx, "session_scored", false, om)
			writeErrorResponse(w, "Failed to score session", trackErr.Error(), http.StatusInternalServerError)
			return
		}

		if !s.AppConfig.Scoring.IncludeIndividualScores {
			result.IndividualScores = nil
		}

		metrics.RecordBusinessMetric(ctx, "session_scored", true, om,
			attribute.Int("responses", result.TotalResponses),
			attribute.String("rating", result.SessionRating))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.total_responses", result.TotalResponses),
			attribute.String("response.session_rating", result.SessionRating),
		)

		writeJSONResponse(w, result, s.Logger)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
