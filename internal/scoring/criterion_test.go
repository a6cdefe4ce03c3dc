package scoring

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEvaluateCriterion(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		criterion Criterion
		want      float64
	}{
		{
			name:      "empty text scores zero",
			text:      "",
			criterion: Criterion{Name: "k", Keywords: []string{"go", "rust"}},
			want:      0,
		},
		{
			name:      "no matches scores zero",
			text:      "completely unrelated prose",
			criterion: Criterion{Name: "k", Keywords: []string{"go", "rust"}},
			want:      0,
		},
		{
			name:      "half keyword coverage",
			text:      "I write go every day",
			criterion: Criterion{Name: "k", Keywords: []string{"go", "rust"}},
			want:      2.5,
		},
		{
			name:      "full keyword coverage caps at five",
			text:      "go and rust",
			criterion: Criterion{Name: "k", Keywords: []string{"go", "rust"}},
			want:      5,
		},
		{
			name:      "matching is case insensitive",
			text:      "GO and RUST",
			criterion: Criterion{Name: "k", Keywords: []string{"go", "rust"}},
			want:      5,
		},
		{
			name:      "substring containment matches inside larger words",
			text:      "we migrated from mysql",
			criterion: Criterion{Name: "k", Keywords: []string{"sql"}},
			want:      5,
		},
		{
			name: "keywords and indicators each contribute half the scale",
			text: "go example",
			criterion: Criterion{
				Name:       "both",
				Keywords:   []string{"go"},
				Indicators: []string{"example"},
			},
			want: 10,
		},
		{
			name: "combined score caps at ten",
			text: "go rust example project",
			criterion: Criterion{
				Name:       "both",
				Keywords:   []string{"go", "rust"},
				Indicators: []string{"example", "project"},
			},
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateCriterion(tt.text, tt.criterion)
			if !approxEqual(got, tt.want) {
				t.Errorf("EvaluateCriterion() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > maxCriterionScore {
				t.Errorf("EvaluateCriterion() = %v, outside [0, 10]", got)
			}
		})
	}
}

func BenchmarkEvaluateCriterion(b *testing.B) {
	rubric := DefaultRubric()
	text := "I debugged a tricky production issue using SQL queries and led the team through the fix"
	criterion := rubric.Criteria()[0]

	b.ResetTimer()
	for b.Loop() {
		EvaluateCriterion(text, criterion)
	}
}
