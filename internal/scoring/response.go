package scoring

import (
	"strings"

	"hirepulse/internal/types"
)

// feedbackRule maps a criterion's score to one of three canned feedback
// sentences. Thresholds are inclusive.
type feedbackRule struct {
	criterion string
	strong    string // score >= 7
	fair      string // score >= 5
	weak      string // otherwise
}

// feedbackRules covers the four criteria that produce response feedback.
// Enthusiasm intentionally has no feedback sentence.
var feedbackRules = []feedbackRule{
	{
		criterion: "technical_knowledge",
		strong:    "Strong technical knowledge demonstrated.",
		fair:      "Good technical understanding shown.",
		weak:      "Consider expanding technical knowledge in relevant areas.",
	},
	{
		criterion: "communication_skills",
		strong:    "Excellent communication and explanation skills.",
		fair:      "Good communication skills demonstrated.",
		weak:      "Work on providing more detailed explanations and examples.",
	},
	{
		criterion: "problem_solving",
		strong:    "Strong problem-solving approach evident.",
		fair:      "Good problem-solving mindset shown.",
		weak:      "Consider discussing specific problem-solving experiences.",
	},
	{
		criterion: "experience_depth",
		strong:    "Rich experience and depth of knowledge.",
		fair:      "Good level of experience demonstrated.",
		weak:      "Consider sharing more specific project experiences.",
	},
}

// ScoreResponse evaluates a single interview answer against every rubric
// criterion and aggregates the results into one 0-10 score with a rating
// band and feedback text. Pure and stateless; identical input always
// yields an identical result.
func (r *Rubric) ScoreResponse(text string) types.ResponseScore {
	criterionScores := make(map[string]float64, len(r.criteria))
	for _, c := range r.criteria {
		criterionScores[c.Name] = EvaluateCriterion(text, c)
	}

	overall := r.Aggregate(criterionScores)

	return types.ResponseScore{
		OverallScore:    round2(overall),
		Rating:          RatingFor(overall),
		CriterionScores: criterionScores,
		Feedback:        responseFeedback(criterionScores),
		ResponseLength:  len(text),
		WordCount:       len(strings.Fields(text)),
	}
}

func responseFeedback(scores map[string]float64) string {
	parts := make([]string, 0, len(feedbackRules))
	for _, rule := range feedbackRules {
		switch score := scores[rule.criterion]; {
		case score >= 7:
			parts = append(parts, rule.strong)
		case score >= 5:
			parts = append(parts, rule.fair)
		default:
			parts = append(parts, rule.weak)
		}
	}
	return strings.Join(parts, " ")
}
