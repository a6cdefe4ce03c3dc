package scoring

import (
	"math"
	"testing"
)

func TestNewRubricValidation(t *testing.T) {
	valid := []Criterion{
		{Name: "a", Weight: 0.6, Keywords: []string{"x"}},
		{Name: "b", Weight: 0.4, Indicators: []string{"y"}},
	}

	tests := []struct {
		name     string
		criteria []Criterion
		wantErr  bool
	}{
		{name: "valid rubric", criteria: valid, wantErr: false},
		{name: "no criteria", criteria: nil, wantErr: true},
		{
			name: "weights must sum to one",
			criteria: []Criterion{
				{Name: "a", Weight: 0.5, Keywords: []string{"x"}},
				{Name: "b", Weight: 0.4, Keywords: []string{"y"}},
			},
			wantErr: true,
		},
		{
			name: "zero weight rejected",
			criteria: []Criterion{
				{Name: "a", Weight: 0, Keywords: []string{"x"}},
				{Name: "b", Weight: 1.0, Keywords: []string{"y"}},
			},
			wantErr: true,
		},
		{
			name: "empty name rejected",
			criteria: []Criterion{
				{Name: "", Weight: 1.0, Keywords: []string{"x"}},
			},
			wantErr: true,
		},
		{
			name: "criterion without vocabulary rejected",
			criteria: []Criterion{
				{Name: "a", Weight: 1.0},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRubric(tt.criteria)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRubric() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultRubric(t *testing.T) {
	rubric := DefaultRubric()

	criteria := rubric.Criteria()
	if len(criteria) != 5 {
		t.Fatalf("expected 5 criteria, got %d", len(criteria))
	}

	wantOrder := []string{
		"technical_knowledge",
		"communication_skills",
		"problem_solving",
		"experience_depth",
		"enthusiasm",
	}
	sum := 0.0
	for i, c := range criteria {
		if c.Name != wantOrder[i] {
			t.Errorf("criterion %d = %q, want %q", i, c.Name, wantOrder[i])
		}
		sum += c.Weight
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		t.Errorf("weights sum to %v, want 1.0", sum)
	}
}

func TestAggregate(t *testing.T) {
	rubric, err := NewRubric([]Criterion{
		{Name: "a", Weight: 0.6, Keywords: []string{"x"}},
		{Name: "b", Weight: 0.4, Indicators: []string{"y"}},
	})
	if err != nil {
		t.Fatalf("NewRubric() error = %v", err)
	}

	tests := []struct {
		name   string
		scores map[string]float64
		want   float64
	}{
		{name: "all present", scores: map[string]float64{"a": 10, "b": 5}, want: 8},
		{name: "missing criterion contributes zero", scores: map[string]float64{"a": 10}, want: 6},
		{name: "unknown names ignored", scores: map[string]float64{"a": 10, "zz": 10}, want: 6},
		{name: "empty map", scores: map[string]float64{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rubric.Aggregate(tt.scores); !approxEqual(got, tt.want) {
				t.Errorf("Aggregate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRatingFor(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{10, RatingExcellent},
		{8.0, RatingExcellent},
		{7.99, RatingGood},
		{6.5, RatingGood},
		{6.49, RatingAverage},
		{5.0, RatingAverage},
		{4.99, RatingBelowAverage},
		{3.0, RatingBelowAverage},
		{2.99, RatingPoor},
		{0, RatingPoor},
	}

	for _, tt := range tests {
		if got := RatingFor(tt.score); got != tt.want {
			t.Errorf("RatingFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
