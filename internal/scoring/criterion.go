package scoring

import "strings"

// Criterion is one named rubric entry: a weight plus the vocabulary used
// for presence counting. A criterion may carry keywords, indicators, or
// both; each matched set contributes up to half of the 0-10 scale.
type Criterion struct {
	Name       string
	Weight     float64
	Keywords   []string
	Indicators []string
}

const (
	maxCriterionScore = 10.0
	halfScale         = 5.0
)

// EvaluateCriterion scores text against a single criterion on a 0-10
// scale. Matching is plain substring containment on the lower-cased
// text, so "sql" also matches inside "mysql"; that looseness is part of
// the rubric contract, not an accident. Empty text scores 0.
func EvaluateCriterion(text string, c Criterion) float64 {
	lowered := strings.ToLower(text)

	score := 0.0
	if len(c.Keywords) > 0 {
		score += vocabularyScore(lowered, c.Keywords)
	}
	if len(c.Indicators) > 0 {
		score += vocabularyScore(lowered, c.Indicators)
	}

	return min(score, maxCriterionScore)
}

// vocabularyScore maps the fraction of matched terms onto [0, 5].
func vocabularyScore(lowered string, terms []string) float64 {
	matches := 0
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			matches++
		}
	}
	return min(float64(matches)/float64(len(terms))*halfScale, halfScale)
}
