package scoring

import (
	"reflect"
	"strings"
	"testing"
)

func TestScoreResponse(t *testing.T) {
	rubric := DefaultRubric()

	t.Run("technical debugging answer", func(t *testing.T) {
		text := "I debugged a tricky production issue using SQL queries and led the team through the fix"
		got := rubric.ScoreResponse(text)

		if got.CriterionScores["technical_knowledge"] <= 0 {
			t.Error("expected nonzero technical_knowledge, sql should match")
		}
		if got.CriterionScores["problem_solving"] <= 0 {
			t.Error("expected nonzero problem_solving, debug/issue/fix should match")
		}
		if got.CriterionScores["experience_depth"] <= 0 {
			t.Error("expected nonzero experience_depth, led/team should match")
		}
		if got.CriterionScores["enthusiasm"] != 0 {
			t.Errorf("expected zero enthusiasm, got %v", got.CriterionScores["enthusiasm"])
		}
		if got.OverallScore < 0 || got.OverallScore > 10 {
			t.Errorf("overall score %v outside [0, 10]", got.OverallScore)
		}
		if want := RatingFor(got.OverallScore); got.Rating != want {
			t.Errorf("rating %q inconsistent with band table, want %q", got.Rating, want)
		}
		if got.ResponseLength != len(text) {
			t.Errorf("response length = %d, want %d", got.ResponseLength, len(text))
		}
		if want := len(strings.Fields(text)); got.WordCount != want {
			t.Errorf("word count = %d, want %d", got.WordCount, want)
		}
	})

	t.Run("empty answer scores zero everywhere", func(t *testing.T) {
		got := rubric.ScoreResponse("")

		if got.OverallScore != 0 {
			t.Errorf("overall score = %v, want 0", got.OverallScore)
		}
		if got.Rating != RatingPoor {
			t.Errorf("rating = %q, want %q", got.Rating, RatingPoor)
		}
		for name, score := range got.CriterionScores {
			if score != 0 {
				t.Errorf("criterion %s = %v, want 0", name, score)
			}
		}
		if got.WordCount != 0 || got.ResponseLength != 0 {
			t.Errorf("counts = (%d, %d), want (0, 0)", got.WordCount, got.ResponseLength)
		}
	})

	t.Run("weak answer gets improvement feedback", func(t *testing.T) {
		got := rubric.ScoreResponse("yes")

		for _, sentence := range []string{
			"Consider expanding technical knowledge in relevant areas.",
			"Work on providing more detailed explanations and examples.",
			"Consider discussing specific problem-solving experiences.",
			"Consider sharing more specific project experiences.",
		} {
			if !strings.Contains(got.Feedback, sentence) {
				t.Errorf("feedback missing %q\nfeedback: %s", sentence, got.Feedback)
			}
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		text := "I built and optimized a REST API with Docker and learned a lot"
		first := rubric.ScoreResponse(text)
		second := rubric.ScoreResponse(text)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("repeated scoring diverged:\nfirst:  %+v\nsecond: %+v", first, second)
		}
	})
}
