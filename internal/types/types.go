package types

import "time"

// WorkType enumerates the supported working arrangements. The sentinel
// WorkTypeAny on a candidate matches every position work type.
const (
	WorkTypeRemote = "remote"
	WorkTypeHybrid = "hybrid"
	WorkTypeOnsite = "onsite"
	WorkTypeAny    = "any"
)

// CandidateProfile represents a candidate submitted for matching.
// Immutable once submitted; skills is a comma-separated list.
type CandidateProfile struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone,omitempty"`
	Location          string `json:"location,omitempty"`
	Experience        string `json:"experience"`
	Skills            string `json:"skills"`
	PreferredRoles    string `json:"preferred_roles,omitempty"`
	SalaryExpectation string `json:"salary_expectation"`
	WorkType          string `json:"work_type"`
	LinkedIn          string `json:"linkedin,omitempty"`
	Portfolio         string `json:"portfolio,omitempty"`
	AdditionalInfo    string `json:"additional_info,omitempty"`
}

// SalaryRange is an inclusive annual salary band in whole currency units.
type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Position is an open role inside a company. Level is matched
// case-insensitively against junior/mid/senior.
type Position struct {
	ID                 string      `json:"id"`
	Title              string      `json:"title"`
	Department         string      `json:"department"`
	Level              string      `json:"level"`
	SkillsRequired     []string    `json:"skills_required"`
	ExperienceRequired string      `json:"experience_required"`
	SalaryRange        SalaryRange `json:"salary_range"`
	WorkType           string      `json:"work_type"`
	Description        string      `json:"description"`
}

// Company groups open positions under one employer. The catalog is a
// read-only list of companies.
type Company struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Industry       string     `json:"industry"`
	Size           string     `json:"size"`
	Location       string     `json:"location"`
	RemoteFriendly bool       `json:"remote_friendly"`
	OpenPositions  []Position `json:"open_positions"`
}

// MatchResult is one candidate/position pairing that cleared the match
// threshold. Salary range, work type and location are denormalized from
// the position and company for display.
type MatchResult struct {
	CompanyID     string      `json:"company_id"`
	CompanyName   string      `json:"company_name"`
	PositionID    string      `json:"position_id"`
	PositionTitle string      `json:"position_title"`
	MatchScore    float64     `json:"match_score"`
	MatchReasons  []string    `json:"match_reasons"`
	SalaryRange   SalaryRange `json:"salary_range"`
	WorkType      string      `json:"work_type"`
	Location      string      `json:"location"`
	Description   string      `json:"description"`
	Department    string      `json:"department"`
	Level         string      `json:"level"`
}

// MatchResponse is the wire shape returned for a matching request.
// Matches are ordered by descending score.
type MatchResponse struct {
	CandidateID  string        `json:"candidate_id"`
	Matches      []MatchResult `json:"matches"`
	TotalMatches int           `json:"total_matches"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Turn roles. Only candidate turns contribute to session scoring.
const (
	RoleCandidate   = "candidate"
	RoleInterviewer = "interviewer"
)

// Turn is one authored message in an interview conversation.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ResponseScore is the rubric evaluation of a single interview answer.
// OverallScore is the weighted criterion sum on a 0-10 scale.
type ResponseScore struct {
	OverallScore    float64            `json:"overall_score"`
	Rating          string             `json:"rating"`
	CriterionScores map[string]float64 `json:"criterion_scores"`
	Feedback        string             `json:"feedback"`
	ResponseLength  int                `json:"response_length"`
	WordCount       int                `json:"word_count"`
}

// SessionScore aggregates the per-response scores of one interview
// session. AverageScores holds the per-criterion arithmetic means over
// all scored candidate responses.
type SessionScore struct {
	SessionScore     float64            `json:"session_score"`
	SessionRating    string             `json:"session_rating"`
	TotalResponses   int                `json:"total_responses"`
	AverageScores    map[string]float64 `json:"average_scores"`
	StrongestArea    string             `json:"strongest_area,omitempty"`
	WeakestArea      string             `json:"weakest_area,omitempty"`
	OverallFeedback  string             `json:"overall_feedback"`
	IndividualScores []ResponseScore    `json:"individual_scores,omitempty"`
}
