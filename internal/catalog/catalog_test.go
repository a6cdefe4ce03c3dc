package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"hirepulse/internal/types"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	companies := Default()

	if err := Validate(companies); err != nil {
		t.Fatalf("built-in catalog invalid: %v", err)
	}
	if len(companies) != 3 {
		t.Errorf("expected 3 companies, got %d", len(companies))
	}

	positions := 0
	for _, c := range companies {
		positions += len(c.OpenPositions)
	}
	if positions != 4 {
		t.Errorf("expected 4 open positions, got %d", positions)
	}
}

func TestValidate(t *testing.T) {
	valid := func() []types.Company {
		return []types.Company{{
			ID:   "comp_x",
			Name: "X",
			OpenPositions: []types.Position{{
				ID:             "pos_x",
				Title:          "Engineer",
				SkillsRequired: []string{"Go"},
				SalaryRange:    types.SalaryRange{Min: 100, Max: 200},
			}},
		}}
	}

	tests := []struct {
		name    string
		mutate  func([]types.Company) []types.Company
		wantErr bool
	}{
		{name: "valid", mutate: func(c []types.Company) []types.Company { return c }, wantErr: false},
		{name: "empty catalog", mutate: func([]types.Company) []types.Company { return nil }, wantErr: true},
		{
			name: "empty company id",
			mutate: func(c []types.Company) []types.Company {
				c[0].ID = " "
				return c
			},
			wantErr: true,
		},
		{
			name: "duplicate company id",
			mutate: func(c []types.Company) []types.Company {
				dup := valid()[0]
				return append(c, dup)
			},
			wantErr: true,
		},
		{
			name: "position without required skills",
			mutate: func(c []types.Company) []types.Company {
				c[0].OpenPositions[0].SkillsRequired = nil
				return c
			},
			wantErr: true,
		},
		{
			name: "inverted salary range",
			mutate: func(c []types.Company) []types.Company {
				c[0].OpenPositions[0].SalaryRange = types.SalaryRange{Min: 200, Max: 100}
				return c
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.mutate(valid()))
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestProvider(t *testing.T) {
	t.Run("empty path serves built-in catalog", func(t *testing.T) {
		p, err := NewProvider("", nil)
		if err != nil {
			t.Fatalf("NewProvider() error = %v", err)
		}
		if len(p.Snapshot()) != len(Default()) {
			t.Errorf("snapshot size = %d, want %d", len(p.Snapshot()), len(Default()))
		}
	})

	t.Run("company lookup", func(t *testing.T) {
		p, err := NewProvider("", nil)
		if err != nil {
			t.Fatalf("NewProvider() error = %v", err)
		}

		company, err := p.Company("comp_002")
		if err != nil {
			t.Fatalf("Company() error = %v", err)
		}
		if company.Name != "StartupXYZ" {
			t.Errorf("company name = %q, want StartupXYZ", company.Name)
		}

		if _, err := p.Company("comp_999"); err == nil {
			t.Error("expected not-found error for unknown company")
		}
	})

	t.Run("missing file fails at construction", func(t *testing.T) {
		if _, err := NewProvider(filepath.Join(t.TempDir(), "missing.json"), nil); err == nil {
			t.Error("expected error for missing catalog file")
		}
	})

	t.Run("failed reload keeps previous snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		good := `{"companies":[{"id":"comp_a","name":"A","open_positions":[` +
			`{"id":"pos_a","title":"Dev","skills_required":["Go"],"salary_range":{"min":1,"max":2}}]}]}`
		if err := os.WriteFile(path, []byte(good), 0o600); err != nil {
			t.Fatal(err)
		}

		p, err := NewProvider(path, nil)
		if err != nil {
			t.Fatalf("NewProvider() error = %v", err)
		}

		if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := p.Reload(); err == nil {
			t.Error("expected reload of invalid catalog to fail")
		}

		if got := p.Snapshot(); len(got) != 1 || got[0].ID != "comp_a" {
			t.Errorf("snapshot changed after failed reload: %+v", got)
		}
	})

	t.Run("successful reload swaps snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		v1 := `{"companies":[{"id":"comp_a","name":"A","open_positions":[` +
			`{"id":"pos_a","title":"Dev","skills_required":["Go"],"salary_range":{"min":1,"max":2}}]}]}`
		v2 := `{"companies":[{"id":"comp_b","name":"B","open_positions":[` +
			`{"id":"pos_b","title":"Dev","skills_required":["Go"],"salary_range":{"min":1,"max":2}}]}]}`

		if err := os.WriteFile(path, []byte(v1), 0o600); err != nil {
			t.Fatal(err)
		}
		p, err := NewProvider(path, nil)
		if err != nil {
			t.Fatalf("NewProvider() error = %v", err)
		}

		if err := os.WriteFile(path, []byte(v2), 0o600); err != nil {
			t.Fatal(err)
		}
		if err := p.Reload(); err != nil {
			t.Fatalf("Reload() error = %v", err)
		}
		if got := p.Snapshot(); len(got) != 1 || got[0].ID != "comp_b" {
			t.Errorf("snapshot after reload = %+v, want comp_b", got)
		}
	})
}
