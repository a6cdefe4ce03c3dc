package scoring

import (
	"strings"
	"testing"

	"hirepulse/internal/types"
)

func TestScoreSession(t *testing.T) {
	rubric := DefaultRubric()

	t.Run("only candidate turns are scored", func(t *testing.T) {
		turns := []types.Turn{
			{Role: types.RoleInterviewer, Content: "Tell me about a project you are proud of."},
			{Role: types.RoleCandidate, Content: "I built a Python API and enjoyed designing the database schema."},
			{Role: types.RoleInterviewer, Content: "How did you handle failures?"},
			{Role: types.RoleCandidate, Content: "I debugged production issues and improved our test coverage."},
			{Role: types.RoleCandidate, Content: "I led a team of three and we learned a lot from the experience."},
		}

		got := rubric.ScoreSession(turns)

		if got.TotalResponses != 3 {
			t.Fatalf("total responses = %d, want 3", got.TotalResponses)
		}
		if len(got.IndividualScores) != 3 {
			t.Fatalf("individual scores = %d, want 3", len(got.IndividualScores))
		}

		// The session score is the mean of the three candidate answers,
		// untouched by interviewer turns.
		sum := 0.0
		for _, s := range got.IndividualScores {
			sum += s.OverallScore
		}
		if want := round2(sum / 3); !approxEqual(got.SessionScore, want) {
			t.Errorf("session score = %v, want %v", got.SessionScore, want)
		}
		if want := RatingFor(got.SessionScore); got.SessionRating != want {
			t.Errorf("session rating = %q, want %q", got.SessionRating, want)
		}
		if !strings.HasPrefix(got.OverallFeedback, "Based on 3 responses:") {
			t.Errorf("feedback does not name the response count: %s", got.OverallFeedback)
		}
	})

	t.Run("blank candidate turns are skipped", func(t *testing.T) {
		turns := []types.Turn{
			{Role: types.RoleCandidate, Content: "   "},
			{Role: types.RoleCandidate, Content: "I enjoy solving problems with SQL."},
			{Role: types.RoleCandidate, Content: ""},
		}

		got := rubric.ScoreSession(turns)
		if got.TotalResponses != 1 {
			t.Errorf("total responses = %d, want 1", got.TotalResponses)
		}
	})

	t.Run("no scorable turns yields sentinel", func(t *testing.T) {
		tests := [][]types.Turn{
			nil,
			{},
			{{Role: types.RoleInterviewer, Content: "Anything to add?"}},
			{{Role: types.RoleCandidate, Content: "  "}},
		}

		for _, turns := range tests {
			got := rubric.ScoreSession(turns)
			if got.SessionScore != 0 {
				t.Errorf("session score = %v, want 0", got.SessionScore)
			}
			if got.SessionRating != RatingNoResponses {
				t.Errorf("session rating = %q, want %q", got.SessionRating, RatingNoResponses)
			}
			if got.TotalResponses != 0 {
				t.Errorf("total responses = %d, want 0", got.TotalResponses)
			}
			if got.OverallFeedback != noResponsesFeedback {
				t.Errorf("feedback = %q, want %q", got.OverallFeedback, noResponsesFeedback)
			}
		}
	})

	t.Run("criterion averages cover every criterion", func(t *testing.T) {
		got := rubric.ScoreSession([]types.Turn{
			{Role: types.RoleCandidate, Content: "I love building APIs in Python."},
		})

		if len(got.AverageScores) != len(rubric.Criteria()) {
			t.Fatalf("average scores cover %d criteria, want %d", len(got.AverageScores), len(rubric.Criteria()))
		}
		for _, c := range rubric.Criteria() {
			if _, ok := got.AverageScores[c.Name]; !ok {
				t.Errorf("average scores missing criterion %s", c.Name)
			}
		}
	})

	t.Run("strongest and weakest ties resolve to first declared criterion", func(t *testing.T) {
		// An answer matching nothing scores every criterion 0, so both
		// extremes tie across all five criteria.
		got := rubric.ScoreSession([]types.Turn{
			{Role: types.RoleCandidate, Content: "zzzz"},
		})

		if got.StrongestArea != "technical_knowledge" {
			t.Errorf("strongest area = %q, want technical_knowledge", got.StrongestArea)
		}
		if got.WeakestArea != "technical_knowledge" {
			t.Errorf("weakest area = %q, want technical_knowledge", got.WeakestArea)
		}
	})

	t.Run("weak session names area for improvement", func(t *testing.T) {
		got := rubric.ScoreSession([]types.Turn{
			{Role: types.RoleCandidate, Content: "not much to say"},
		})

		if !strings.Contains(got.OverallFeedback, "Area for improvement:") {
			t.Errorf("feedback missing improvement area: %s", got.OverallFeedback)
		}
		if !strings.Contains(got.OverallFeedback, "Candidate needs significant development.") {
			t.Errorf("feedback missing closing recommendation: %s", got.OverallFeedback)
		}
	})
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"technical_knowledge", "Technical Knowledge"},
		{"enthusiasm", "Enthusiasm"},
		{"problem_solving", "Problem Solving"},
	}

	for _, tt := range tests {
		if got := displayName(tt.in); got != tt.want {
			t.Errorf("displayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
