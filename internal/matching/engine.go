// Package matching ranks candidate profiles against a read-only catalog
// of companies and open positions. The engine is pure and stateless:
// every request is scored independently over an immutable catalog
// snapshot, so calls are safe to fan out without coordination.
package matching

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"hirepulse/internal/types"
)

// Weights are the sub-score weights of the match formula. They must sum
// to 1.0 so the total score stays within [0, 1].
type Weights struct {
	Skills     float64 `json:"skills" mapstructure:"skills"`
	Experience float64 `json:"experience" mapstructure:"experience"`
	WorkType   float64 `json:"work_type" mapstructure:"work_type"`
	Salary     float64 `json:"salary" mapstructure:"salary"`
}

// DefaultWeights returns the standard 0.40/0.25/0.20/0.15 split.
func DefaultWeights() Weights {
	return Weights{Skills: 0.40, Experience: 0.25, WorkType: 0.20, Salary: 0.15}
}

func (w Weights) sum() float64 {
	return w.Skills + w.Experience + w.WorkType + w.Salary
}

// Validate enforces the weight-sum invariant at configuration load.
func (w Weights) Validate() error {
	if w.Skills <= 0 || w.Experience <= 0 || w.WorkType <= 0 || w.Salary <= 0 {
		return fmt.Errorf("match weights must all be positive, got %+v", w)
	}
	if sum := w.sum(); math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("match weights sum to %v, must sum to 1.0", sum)
	}
	return nil
}

// DefaultThreshold is the minimum score a pair must exceed to be
// reported. The comparison is strict: a score equal to the threshold is
// discarded.
const DefaultThreshold = 0.30

// skillsReasonCutoff gates the skills reason line, not the sub-score.
const skillsReasonCutoff = 0.5

// firstInteger pulls the leading run of digits out of free-text salary
// expectations like "110k" or "around 110-120".
var firstInteger = regexp.MustCompile(`\d+`)

// experienceBands map a position level to the substrings expected in the
// candidate's free-text experience field. Bands are checked in order and
// at most one awards credit per pair. The junior and mid bands both
// accept "2-3", a known double-credit condition kept on purpose: a
// candidate with "2-3" in their experience earns full credit against
// both junior and mid positions.
var experienceBands = []struct {
	level   string
	markers []string
	reason  string
}{
	{level: "senior", markers: []string{"7-10", "10+"}, reason: "Experience level matches senior position"},
	{level: "mid", markers: []string{"4-6", "2-3"}, reason: "Experience level matches mid-level position"},
	{level: "junior", markers: []string{"0-1", "2-3"}, reason: "Experience level matches junior position"},
}

// Engine scores candidates against positions. Zero-value Engine is not
// usable; construct with New.
type Engine struct {
	weights   Weights
	threshold float64
}

// New builds an Engine after validating the weight invariant.
func New(weights Weights, threshold float64) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if threshold < 0 || threshold >= 1 {
		return nil, fmt.Errorf("match threshold %v outside [0, 1)", threshold)
	}
	return &Engine{weights: weights, threshold: threshold}, nil
}

// NewDefault builds an Engine with the standard weights and threshold.
func NewDefault() *Engine {
	e, err := New(DefaultWeights(), DefaultThreshold)
	if err != nil {
		panic(fmt.Sprintf("default matching config invalid: %v", err))
	}
	return e
}

// Match scores the candidate against every open position in the catalog,
// drops pairs at or below the threshold and returns the rest in
// descending score order. The sort is stable, so ties keep catalog
// iteration order. Malformed candidate fields degrade to zero sub-scores
// and never abort the request.
func (e *Engine) Match(candidate types.CandidateProfile, catalog []types.Company) []types.MatchResult {
	results := make([]types.MatchResult, 0)

	for _, company := range catalog {
		for _, position := range company.OpenPositions {
			score, reasons := e.scorePair(candidate, position)
			if score <= e.threshold {
				continue
			}
			results = append(results, types.MatchResult{
				CompanyID:     company.ID,
				CompanyName:   company.Name,
				PositionID:    position.ID,
				PositionTitle: position.Title,
				MatchScore:    round2(score),
				MatchReasons:  reasons,
				SalaryRange:   position.SalaryRange,
				WorkType:      position.WorkType,
				Location:      company.Location,
				Description:   position.Description,
				Department:    position.Department,
				Level:         position.Level,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	return results
}

func (e *Engine) scorePair(candidate types.CandidateProfile, position types.Position) (float64, []string) {
	score := 0.0
	reasons := []string{}

	if skillsMatch := skillsScore(candidate.Skills, position.SkillsRequired); skillsMatch > 0 {
		score += skillsMatch * e.weights.Skills
		if skillsMatch > skillsReasonCutoff {
			reasons = append(reasons, fmt.Sprintf("Strong skills match: %.1f%%", skillsMatch*100))
		}
	}

	if reason, ok := experienceMatch(candidate.Experience, position.Level); ok {
		score += e.weights.Experience
		reasons = append(reasons, reason)
	}

	if candidate.WorkType == position.WorkType || candidate.WorkType == types.WorkTypeAny {
		score += e.weights.WorkType
		reasons = append(reasons, "Work type preference matches: "+position.WorkType)
	}

	if salaryInRange(candidate.SalaryExpectation, position.SalaryRange) {
		score += e.weights.Salary
		reasons = append(reasons, "Salary expectation within range")
	}

	return min(score, 1.0), reasons
}

// skillsScore is the fraction of required skills the candidate lists.
// The candidate field is comma-separated free text; entries are trimmed
// and compared case-insensitively as a set. An empty required set is a
// catalog configuration error caught at load time, but degrade to zero
// here rather than divide by zero.
func skillsScore(candidateSkills string, required []string) float64 {
	if len(required) == 0 {
		return 0
	}

	have := make(map[string]bool)
	for _, skill := range strings.Split(candidateSkills, ",") {
		if s := strings.ToLower(strings.TrimSpace(skill)); s != "" {
			have[s] = true
		}
	}

	matched := 0
	for _, skill := range required {
		if have[strings.ToLower(strings.TrimSpace(skill))] {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}

// experienceMatch checks the candidate's free-text experience against
// the band for the position's level. Level matching is a
// case-insensitive substring test, so "Senior" and "senior engineer"
// both hit the senior band. Only the first band whose level matches is
// consulted.
func experienceMatch(experience, level string) (string, bool) {
	loweredLevel := strings.ToLower(level)
	for _, band := range experienceBands {
		if !strings.Contains(loweredLevel, band.level) {
			continue
		}
		for _, marker := range band.markers {
			if strings.Contains(experience, marker) {
				return band.reason, true
			}
		}
		return "", false
	}
	return "", false
}

// salaryInRange parses the first integer literal in the candidate's
// salary expectation, scales it by 1000 (the field is expressed in
// thousands) and checks inclusive range membership. Any parse failure
// means no credit, never an error.
func salaryInRange(expectation string, r types.SalaryRange) bool {
	digits := firstInteger.FindString(expectation)
	if digits == "" {
		return false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return false
	}
	salary := n * 1000
	return salary >= r.Min && salary <= r.Max
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
