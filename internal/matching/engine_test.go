package matching

import (
	"math"
	"reflect"
	"testing"

	"hirepulse/internal/types"
)

func backendPosition() types.Position {
	return types.Position{
		ID:                 "pos_003",
		Title:              "Backend Developer",
		Department:         "Engineering",
		Level:              "Mid",
		SkillsRequired:     []string{"Python", "Django", "PostgreSQL", "Docker"},
		ExperienceRequired: "3-5 years",
		SalaryRange:        types.SalaryRange{Min: 95000, Max: 125000},
		WorkType:           types.WorkTypeRemote,
		Description:        "Build scalable backend systems for fintech platform",
	}
}

func singlePositionCatalog(p types.Position) []types.Company {
	return []types.Company{{
		ID:            "comp_002",
		Name:          "StartupXYZ",
		Location:      "New York, NY",
		OpenPositions: []types.Position{p},
	}}
}

func TestMatchBackendCandidate(t *testing.T) {
	engine := NewDefault()
	candidate := types.CandidateProfile{
		Name:              "Sam",
		Email:             "sam@example.com",
		Skills:            "Python, Django, PostgreSQL",
		Experience:        "3-5 years",
		WorkType:          types.WorkTypeRemote,
		SalaryExpectation: "110",
	}

	results := engine.Match(candidate, singlePositionCatalog(backendPosition()))
	if len(results) != 1 {
		t.Fatalf("expected 1 match, got %d", len(results))
	}

	got := results[0]
	// 3/4 skills (0.30) + work type (0.20) + salary in range (0.15).
	// "3-5 years" hits neither mid band marker, so no experience credit.
	if got.MatchScore != 0.65 {
		t.Errorf("match score = %v, want 0.65", got.MatchScore)
	}
	wantReasons := []string{
		"Strong skills match: 75.0%",
		"Work type preference matches: remote",
		"Salary expectation within range",
	}
	if !reflect.DeepEqual(got.MatchReasons, wantReasons) {
		t.Errorf("reasons = %v, want %v", got.MatchReasons, wantReasons)
	}
	if got.CompanyID != "comp_002" || got.PositionID != "pos_003" {
		t.Errorf("ids = (%s, %s), want (comp_002, pos_003)", got.CompanyID, got.PositionID)
	}
	if got.Location != "New York, NY" {
		t.Errorf("location = %q, want company location", got.Location)
	}
}

func TestMatchThresholdAndOrdering(t *testing.T) {
	engine := NewDefault()

	catalog := []types.Company{
		{
			ID:   "comp_a",
			Name: "A",
			OpenPositions: []types.Position{
				{
					ID:             "weak",
					Title:          "Weak Fit",
					Level:          "Senior",
					SkillsRequired: []string{"Go", "Rust", "C", "Zig"},
					SalaryRange:    types.SalaryRange{Min: 200000, Max: 250000},
					WorkType:       types.WorkTypeOnsite,
				},
				{
					ID:             "strong",
					Title:          "Strong Fit",
					Level:          "Mid",
					SkillsRequired: []string{"Go", "SQL"},
					SalaryRange:    types.SalaryRange{Min: 90000, Max: 120000},
					WorkType:       types.WorkTypeRemote,
				},
				{
					ID:             "medium",
					Title:          "Medium Fit",
					Level:          "Senior",
					SkillsRequired: []string{"Go", "SQL"},
					SalaryRange:    types.SalaryRange{Min: 150000, Max: 200000},
					WorkType:       types.WorkTypeRemote,
				},
			},
		},
	}

	candidate := types.CandidateProfile{
		Skills:            "Go, SQL",
		Experience:        "4-6 years",
		WorkType:          types.WorkTypeRemote,
		SalaryExpectation: "100k",
	}

	results := engine.Match(candidate, catalog)

	if len(results) != 2 {
		t.Fatalf("expected 2 matches above threshold, got %d", len(results))
	}
	if results[0].PositionID != "strong" || results[1].PositionID != "medium" {
		t.Errorf("order = [%s, %s], want [strong, medium]", results[0].PositionID, results[1].PositionID)
	}
	for _, r := range results {
		if r.MatchScore <= DefaultThreshold || r.MatchScore > 1.0 {
			t.Errorf("score %v outside (0.30, 1.0]", r.MatchScore)
		}
	}
	if results[0].MatchScore < results[1].MatchScore {
		t.Error("results not sorted by descending score")
	}
}

func TestExperienceMatch(t *testing.T) {
	tests := []struct {
		name       string
		experience string
		level      string
		wantOK     bool
	}{
		{"senior upper band", "I have 10+ years", "Senior", true},
		{"senior lower band", "7-10 years of work", "Senior", true},
		{"senior no marker", "4-6 years", "Senior", false},
		{"mid band", "4-6 years", "Mid", true},
		{"mid via 2-3", "2-3 years", "Mid", true},
		{"junior via 2-3", "2-3 years", "Junior", true},
		{"junior entry", "0-1 years", "Junior", true},
		{"junior no marker", "7-10 years", "Junior", false},
		{"case insensitive level", "10+ years", "SENIOR", true},
		{"unknown level", "10+ years", "Principal", false},
		{"empty experience", "", "Mid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := experienceMatch(tt.experience, tt.level)
			if ok != tt.wantOK {
				t.Errorf("experienceMatch(%q, %q) = %v, want %v", tt.experience, tt.level, ok, tt.wantOK)
			}
		})
	}
}

func TestSkillsScore(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		required  []string
		want      float64
	}{
		{"full overlap", "Go, SQL", []string{"Go", "SQL"}, 1.0},
		{"partial overlap", "Python, Django, PostgreSQL", []string{"Python", "Django", "PostgreSQL", "Docker"}, 0.75},
		{"case and whitespace insensitive", "  python ,DJANGO", []string{"Python", "Django"}, 1.0},
		{"empty candidate skills", "", []string{"Go"}, 0},
		{"empty required set degrades to zero", "Go", nil, 0},
		{"no exact set member", "postgres", []string{"postgresql"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := skillsScore(tt.candidate, tt.required); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("skillsScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSalaryInRange(t *testing.T) {
	r := types.SalaryRange{Min: 95000, Max: 125000}

	tests := []struct {
		name        string
		expectation string
		want        bool
	}{
		{"bare thousands", "110", true},
		{"with suffix", "110k", true},
		{"first number wins", "110-130", true},
		{"below range", "90", false},
		{"above range", "130", false},
		{"inclusive bounds", "95", true},
		{"no digits", "negotiable", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := salaryInRange(tt.expectation, r); got != tt.want {
				t.Errorf("salaryInRange(%q) = %v, want %v", tt.expectation, got, tt.want)
			}
		})
	}
}

func TestWeightsValidate(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Errorf("default weights invalid: %v", err)
	}

	bad := Weights{Skills: 0.5, Experience: 0.25, WorkType: 0.2, Salary: 0.15}
	if err := bad.Validate(); err == nil {
		t.Error("expected weight-sum violation to fail validation")
	}

	negative := Weights{Skills: -0.1, Experience: 0.55, WorkType: 0.4, Salary: 0.15}
	if err := negative.Validate(); err == nil {
		t.Error("expected negative weight to fail validation")
	}
}

func TestMatchIdempotent(t *testing.T) {
	engine := NewDefault()
	candidate := types.CandidateProfile{
		Skills:            "Python, Django",
		Experience:        "4-6 years",
		WorkType:          types.WorkTypeAny,
		SalaryExpectation: "100",
	}
	catalog := singlePositionCatalog(backendPosition())

	first := engine.Match(candidate, catalog)
	second := engine.Match(candidate, catalog)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated matching diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func BenchmarkMatch(b *testing.B) {
	engine := NewDefault()
	candidate := types.CandidateProfile{
		Skills:            "Python, Django, PostgreSQL",
		Experience:        "3-5 years",
		WorkType:          types.WorkTypeRemote,
		SalaryExpectation: "110",
	}
	catalog := singlePositionCatalog(backendPosition())

	b.ResetTimer()
	for b.Loop() {
		engine.Match(candidate, catalog)
	}
}
