package scoring

import (
	"fmt"
	"strings"

	"hirepulse/internal/types"
)

// noResponsesFeedback is returned with the sentinel session score.
const noResponsesFeedback = "No candidate responses to evaluate."

// ScoreSession evaluates an entire interview from its turn history.
// Only candidate turns with non-blank content are scored; interviewer
// turns never contribute. The result is recomputed from scratch on each
// call, never maintained incrementally.
func (r *Rubric) ScoreSession(turns []types.Turn) types.SessionScore {
	var individual []types.ResponseScore
	for _, turn := range turns {
		if turn.Role != types.RoleCandidate || strings.TrimSpace(turn.Content) == "" {
			continue
		}
		individual = append(individual, r.ScoreResponse(turn.Content))
	}

	if len(individual) == 0 {
		return types.SessionScore{
			SessionScore:    0,
			SessionRating:   RatingNoResponses,
			TotalResponses:  0,
			AverageScores:   map[string]float64{},
			OverallFeedback: noResponsesFeedback,
		}
	}

	n := float64(len(individual))

	averages := make(map[string]float64, len(r.criteria))
	for _, c := range r.criteria {
		sum := 0.0
		for _, score := range individual {
			sum += score.CriterionScores[c.Name]
		}
		averages[c.Name] = sum / n
	}

	sessionScore := 0.0
	for _, score := range individual {
		sessionScore += score.OverallScore
	}
	sessionScore /= n

	strongest, weakest := r.extremes(averages)

	return types.SessionScore{
		SessionScore:     round2(sessionScore),
		SessionRating:    RatingFor(sessionScore),
		TotalResponses:   len(individual),
		AverageScores:    averages,
		StrongestArea:    strongest,
		WeakestArea:      weakest,
		OverallFeedback:  r.sessionFeedback(averages, strongest, weakest, len(individual)),
		IndividualScores: individual,
	}
}

// extremes finds the best and worst criterion by average score. Ties go
// to the criterion declared first in the rubric, which is why iteration
// runs over the ordered criteria slice rather than the map.
func (r *Rubric) extremes(averages map[string]float64) (strongest, weakest string) {
	best, worst := -1.0, -1.0
	for _, c := range r.criteria {
		avg := averages[c.Name]
		if best < 0 || avg > best {
			best, strongest = avg, c.Name
		}
		if worst < 0 || avg < worst {
			worst, weakest = avg, c.Name
		}
	}
	return strongest, weakest
}

func (r *Rubric) sessionFeedback(averages map[string]float64, strongest, weakest string, responses int) string {
	parts := []string{fmt.Sprintf("Based on %d responses:", responses)}

	if averages[strongest] >= 7 {
		parts = append(parts, "Strongest area: "+displayName(strongest))
	}
	if averages[weakest] < 5 {
		parts = append(parts, "Area for improvement: "+displayName(weakest))
	}

	total := 0.0
	for _, c := range r.criteria {
		total += averages[c.Name]
	}
	switch mean := total / float64(len(r.criteria)); {
	case mean >= 7:
		parts = append(parts, "Overall: Strong candidate with good potential.")
	case mean >= 5:
		parts = append(parts, "Overall: Good candidate with room for growth.")
	default:
		parts = append(parts, "Overall: Candidate needs significant development.")
	}

	return strings.Join(parts, " ")
}

// displayName turns a snake_case criterion name into a title for
// feedback text, e.g. "technical_knowledge" -> "Technical Knowledge".
func displayName(criterion string) string {
	words := strings.Split(criterion, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
