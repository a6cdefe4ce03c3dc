package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"hirepulse/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "MatchResponse", &MatchTextFormatter{})
	registry.RegisterFormatter("markdown", "MatchResponse", &MatchMarkdownFormatter{})
	registry.RegisterFormatter("text", "ResponseScore", &ResponseScoreTextFormatter{})
	registry.RegisterFormatter("markdown", "ResponseScore", &ResponseScoreMarkdownFormatter{})
	registry.RegisterFormatter("text", "SessionScore", &SessionScoreTextFormatter{})
	registry.RegisterFormatter("markdown", "SessionScore", &SessionScoreMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.MatchResponse:
		return "MatchResponse"
	case types.ResponseScore:
		return "ResponseScore"
	case types.SessionScore:
		return "SessionScore"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// MatchTextFormatter handles text formatting for match results
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchResponse)
	if !ok {
		return "", fmt.Errorf("expected MatchResponse, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== POSITION MATCHES ===\n\n")
	output.WriteString(fmt.Sprintf("Candidate ID: %s\n", result.CandidateID))
	output.WriteString(fmt.Sprintf("Total Matches: %d\n\n", result.TotalMatches))

	if result.TotalMatches == 0 {
		output.WriteString("No positions cleared the match threshold.\n")
		return output.String(), nil
	}

	for i, match := range result.Matches {
		output.WriteString(fmt.Sprintf("%d. %s at %s\n", i+1, match.PositionTitle, match.CompanyName))
		output.WriteString(fmt.Sprintf("   Score: %.2f\n", match.MatchScore))
		output.WriteString(fmt.Sprintf("   Level: %s | Work Type: %s | Location: %s\n",
			match.Level, match.WorkType, match.Location))
		output.WriteString(fmt.Sprintf("   Salary: $%d - $%d\n", match.SalaryRange.Min, match.SalaryRange.Max))
		if len(match.MatchReasons) > 0 {
			output.WriteString("   Reasons:\n")
			for _, reason := range match.MatchReasons {
				output.WriteString(fmt.Sprintf("   - %s\n", reason))
			}
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return "MatchResponse"
}

// MatchMarkdownFormatter handles markdown formatting for match results
type MatchMarkdownFormatter struct{}

func (mmf *MatchMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchResponse)
	if !ok {
		return "", fmt.Errorf("expected MatchResponse, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Position Matches\n\n")
	output.WriteString(fmt.Sprintf("**Candidate ID:** %s\n\n", result.CandidateID))
	output.WriteString(fmt.Sprintf("**Total Matches:** %d\n\n", result.TotalMatches))

	if result.TotalMatches == 0 {
		output.WriteString("No positions cleared the match threshold.\n")
		return output.String(), nil
	}

	for i, match := range result.Matches {
		output.WriteString(fmt.Sprintf("## %d. %s at %s\n\n", i+1, match.PositionTitle, match.CompanyName))
		output.WriteString(fmt.Sprintf("**Score:** %.2f\n\n", match.MatchScore))
		output.WriteString(fmt.Sprintf("**Level:** %s | **Work Type:** %s | **Location:** %s\n\n",
			match.Level, match.WorkType, match.Location))
		output.WriteString(fmt.Sprintf("**Salary:** $%d - $%d\n\n", match.SalaryRange.Min, match.SalaryRange.Max))
		if len(match.MatchReasons) > 0 {
			output.WriteString("### Match Reasons\n")
			for _, reason := range match.MatchReasons {
				output.WriteString(fmt.Sprintf("- %s\n", reason))
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (mmf *MatchMarkdownFormatter) SupportedType() string {
	return "MatchResponse"
}

// ResponseScoreTextFormatter handles text formatting for single-response scores
type ResponseScoreTextFormatter struct{}

func (rtf *ResponseScoreTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResponseScore)
	if !ok {
		return "", fmt.Errorf("expected ResponseScore, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESPONSE SCORE ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %.2f/10\n", result.OverallScore))
	output.WriteString(fmt.Sprintf("Rating: %s\n", result.Rating))
	output.WriteString(fmt.Sprintf("Words: %d (%d characters)\n\n", result.WordCount, result.ResponseLength))

	if len(result.CriterionScores) > 0 {
		output.WriteString("Criterion Scores:\n")
		for name, score := range result.CriterionScores {
			output.WriteString(fmt.Sprintf("  %-25s %.2f/10\n", name, score))
		}
		output.WriteString("\n")
	}

	if result.Feedback != "" {
		output.WriteString("Feedback:\n")
		output.WriteString(result.Feedback)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rtf *ResponseScoreTextFormatter) SupportedType() string {
	return "ResponseScore"
}

// ResponseScoreMarkdownFormatter handles markdown formatting for single-response scores
type ResponseScoreMarkdownFormatter struct{}

func (rmf *ResponseScoreMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResponseScore)
	if !ok {
		return "", fmt.Errorf("expected ResponseScore, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Response Score\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %.2f/10\n\n", result.OverallScore))
	output.WriteString(fmt.Sprintf("**Rating:** %s\n\n", result.Rating))
	output.WriteString(fmt.Sprintf("**Words:** %d (%d characters)\n\n", result.WordCount, result.ResponseLength))

	if len(result.CriterionScores) > 0 {
		output.WriteString("## Criterion Scores\n\n")
		for name, score := range result.CriterionScores {
			output.WriteString(fmt.Sprintf("- **%s:** %.2f/10\n", name, score))
		}
		output.WriteString("\n")
	}

	if result.Feedback != "" {
		output.WriteString("## Feedback\n\n")
		output.WriteString(result.Feedback)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (rmf *ResponseScoreMarkdownFormatter) SupportedType() string {
	return "ResponseScore"
}

// SessionScoreTextFormatter handles text formatting for session scores
type SessionScoreTextFormatter struct{}

func (stf *SessionScoreTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.SessionScore)
	if !ok {
		return "", fmt.Errorf("expected SessionScore, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== INTERVIEW SESSION SCORE ===\n\n")
	output.WriteString(fmt.Sprintf("Session Score: %.2f/10\n", result.SessionScore))
	output.WriteString(fmt.Sprintf("Rating: %s\n", result.SessionRating))
	output.WriteString(fmt.Sprintf("Responses Scored: %d\n\n", result.TotalResponses))

	if len(result.AverageScores) > 0 {
		output.WriteString("Average Criterion Scores:\n")
		for name, score := range result.AverageScores {
			output.WriteString(fmt.Sprintf("  %-25s %.2f/10\n", name, score))
		}
		output.WriteString("\n")
	}

	if result.StrongestArea != "" {
		output.WriteString(fmt.Sprintf("Strongest Area: %s\n", result.StrongestArea))
	}
	if result.WeakestArea != "" {
		output.WriteString(fmt.Sprintf("Weakest Area: %s\n", result.WeakestArea))
	}
	if result.StrongestArea != "" || result.WeakestArea != "" {
		output.WriteString("\n")
	}

	if result.OverallFeedback != "" {
		output.WriteString("Overall Feedback:\n")
		output.WriteString(result.OverallFeedback)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (stf *SessionScoreTextFormatter) SupportedType() string {
	return "SessionScore"
}

// SessionScoreMarkdownFormatter handles markdown formatting for session scores
type SessionScoreMarkdownFormatter struct{}

func (smf *SessionScoreMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.SessionScore)
	if !ok {
		return "", fmt.Errorf("expected SessionScore, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Interview Session Score\n\n")
	output.WriteString(fmt.Sprintf("**Session Score:** %.2f/10\n\n", result.SessionScore))
	output.WriteString(fmt.Sprintf("**Rating:** %s\n\n", result.SessionRating))
	output.WriteString(fmt.Sprintf("**Responses Scored:** %d\n\n", result.TotalResponses))

	if len(result.AverageScores) > 0 {
		output.WriteString("## Average Criterion Scores\n\n")
		for name, score := range result.AverageScores {
			output.WriteString(fmt.Sprintf("- **%s:** %.2f/10\n", name, score))
		}
		output.WriteString("\n")
	}

	if result.StrongestArea != "" {
		output.WriteString(fmt.Sprintf("**Strongest Area:** %s\n\n", result.StrongestArea))
	}
	if result.WeakestArea != "" {
		output.WriteString(fmt.Sprintf("**Weakest Area:** %s\n\n", result.WeakestArea))
	}

	if result.OverallFeedback != "" {
		output.WriteString("## Overall Feedback\n\n")
		output.WriteString(result.OverallFeedback)
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (smf *SessionScoreMarkdownFormatter) SupportedType() string {
	return "SessionScore"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
