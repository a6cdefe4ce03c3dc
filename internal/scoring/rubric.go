package scoring

import (
	"fmt"
	"math"
)

// Rating bands for 0-10 scale scores. Breakpoints are inclusive at the
// lower bound. RatingNoResponses is the sentinel for a session with no
// scorable candidate turns and is never produced by RatingFor.
const (
	RatingExcellent    = "Excellent"
	RatingGood         = "Good"
	RatingAverage      = "Average"
	RatingBelowAverage = "Below Average"
	RatingPoor         = "Poor"
	RatingNoResponses  = "No Responses"
)

// weightSumTolerance absorbs float accumulation error when checking that
// rubric weights sum to exactly 1.0.
const weightSumTolerance = 1e-9

// Rubric is an ordered, immutable set of scoring criteria. Order matters:
// strongest/weakest ties in session aggregation resolve to the earliest
// declared criterion.
type Rubric struct {
	criteria []Criterion
}

// NewRubric builds a rubric and enforces the weight-sum invariant: the
// criterion weights must sum to 1.0 so that aggregate output stays
// within the sub-score range. Violations are configuration errors and
// must be surfaced at load time, before any scoring call.
func NewRubric(criteria []Criterion) (*Rubric, error) {
	if len(criteria) == 0 {
		return nil, fmt.Errorf("rubric requires at least one criterion")
	}

	sum := 0.0
	for _, c := range criteria {
		if c.Name == "" {
			return nil, fmt.Errorf("rubric criterion with empty name")
		}
		if c.Weight <= 0 || c.Weight > 1 {
			return nil, fmt.Errorf("criterion %q has weight %v, must be in (0, 1]", c.Name, c.Weight)
		}
		if len(c.Keywords) == 0 && len(c.Indicators) == 0 {
			return nil, fmt.Errorf("criterion %q defines neither keywords nor indicators", c.Name)
		}
		sum += c.Weight
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return nil, fmt.Errorf("rubric weights sum to %v, must sum to 1.0", sum)
	}

	out := make([]Criterion, len(criteria))
	copy(out, criteria)
	return &Rubric{criteria: out}, nil
}

// DefaultRubric returns the five-criterion interview rubric. Weights sum
// to exactly 1.0 (0.30 + 0.25 + 0.20 + 0.15 + 0.10).
func DefaultRubric() *Rubric {
	r, err := NewRubric([]Criterion{
		{
			Name:   "technical_knowledge",
			Weight: 0.30,
			Keywords: []string{
				"java", "javascript", "python", "react", "node", "sql", "database",
				"api", "aws", "docker", "git", "html", "css", "framework", "library",
				"algorithm", "data structure", "oop", "mvc", "rest", "json", "xml",
			},
		},
		{
			Name:   "communication_skills",
			Weight: 0.25,
			Indicators: []string{
				"explain", "describe", "walk through", "example", "experience",
				"project", "challenge", "solution", "learned", "improved",
			},
		},
		{
			Name:   "problem_solving",
			Weight: 0.20,
			Keywords: []string{
				"debug", "troubleshoot", "fix", "solve", "issue", "problem",
				"challenge", "optimize", "improve", "refactor", "test",
			},
		},
		{
			Name:   "experience_depth",
			Weight: 0.15,
			Indicators: []string{
				"years", "experience", "worked on", "developed", "built",
				"implemented", "designed", "architected", "led", "managed", "team",
			},
		},
		{
			Name:   "enthusiasm",
			Weight: 0.10,
			Indicators: []string{
				"excited", "passionate", "love", "enjoy", "interesting",
				"fascinating", "amazing", "great", "awesome", "motivated",
			},
		},
	})
	if err != nil {
		// The built-in rubric is validated by tests; reaching this means
		// the table above was edited into an invalid state.
		panic(fmt.Sprintf("built-in rubric invalid: %v", err))
	}
	return r
}

// Criteria returns the criteria in declaration order.
func (r *Rubric) Criteria() []Criterion {
	return r.criteria
}

// Aggregate combines per-criterion scores into a single weighted scalar.
// The aggregation is unit-agnostic: with 0-10 sub-scores and weights
// summing to 1.0 the result stays in [0, 10]. Criteria missing from the
// map contribute 0.
func (r *Rubric) Aggregate(criterionScores map[string]float64) float64 {
	total := 0.0
	for _, c := range r.criteria {
		total += criterionScores[c.Name] * c.Weight
	}
	return total
}

// RatingFor converts a 0-10 score to its rating band.
func RatingFor(score float64) string {
	switch {
	case score >= 8.0:
		return RatingExcellent
	case score >= 6.5:
		return RatingGood
	case score >= 5.0:
		return RatingAverage
	case score >= 3.0:
		return RatingBelowAverage
	default:
		return RatingPoor
	}
}

// round2 rounds to two decimal places, the precision of all reported
// scores.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
