// Package catalog owns the read-only company and position data the
// matching engine scores against. Consumers always work on an immutable
// snapshot; reloads swap the whole snapshot atomically so an in-flight
// match request never observes a partial catalog.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"hirepulse/internal/errors"
	"hirepulse/internal/types"
)

// File is the on-disk catalog shape.
type File struct {
	Companies []types.Company `json:"companies"`
}

// Provider serves catalog snapshots. Safe for concurrent use.
type Provider struct {
	mu        sync.RWMutex
	companies []types.Company
	path      string
	logger    *errors.Logger
}

// NewProvider builds a provider. With an empty path the built-in sample
// catalog is served; otherwise the file is loaded and validated up
// front so a broken catalog fails at startup, not per request.
func NewProvider(path string, logger *errors.Logger) (*Provider, error) {
	p := &Provider{path: path, logger: logger}

	if path == "" {
		p.companies = Default()
		return p, nil
	}

	companies, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	p.companies = companies
	return p, nil
}

// Snapshot returns the current catalog. Callers must not mutate the
// returned slice; it is shared with concurrent readers.
func (p *Provider) Snapshot() []types.Company {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.companies
}

// Company looks up one company by id.
func (p *Provider) Company(id string) (types.Company, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, company := range p.companies {
		if company.ID == id {
			return company, nil
		}
	}
	return types.Company{}, errors.NewNotFoundError(errors.ErrCodeCompanyNotFound,
		"company not found", nil).WithContext("company_id", id)
}

// Reload re-reads the catalog file and swaps the snapshot. A reload
// that fails validation keeps the previous snapshot in place, so a bad
// edit never takes the service down.
func (p *Provider) Reload() error {
	if p.path == "" {
		return nil
	}

	companies, err := LoadFile(p.path)
	if err != nil {
		if p.logger != nil {
			p.logger.LogError(err, "Catalog reload rejected, keeping previous snapshot", "path", p.path)
		}
		return err
	}

	p.mu.Lock()
	p.companies = companies
	p.mu.Unlock()

	if p.logger != nil {
		p.logger.Info("Catalog reloaded", "path", p.path, "companies", len(companies))
	}
	return nil
}

// LoadFile reads and validates a catalog file.
func LoadFile(path string) ([]types.Company, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("catalog file not found: %s", path), err)
		}
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("failed to read catalog file: %s", path), err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("catalog file is not valid JSON: %s", path), err)
	}

	if err := Validate(file.Companies); err != nil {
		return nil, err
	}
	return file.Companies, nil
}

// Validate enforces the catalog preconditions the matching engine
// relies on: unique non-empty ids, a non-empty required-skills set per
// position and sane salary ranges. Violations are configuration errors
// surfaced at load time.
func Validate(companies []types.Company) error {
	if len(companies) == 0 {
		return errors.NewConfigError(errors.ErrCodeInvalidCatalog,
			"catalog contains no companies", nil)
	}

	seenCompanies := make(map[string]bool)
	seenPositions := make(map[string]bool)

	for _, company := range companies {
		if strings.TrimSpace(company.ID) == "" {
			return errors.NewConfigError(errors.ErrCodeInvalidCatalog,
				"company with empty id", nil).WithContext("company_name", company.Name)
		}
		if seenCompanies[company.ID] {
			return errors.NewConfigError(errors.ErrCodeInvalidCatalog,
				"duplicate company id", nil).WithContext("company_id", company.ID)
		}
		seenCompanies[company.ID] = true

		for _, position := range company.OpenPositions {
			if strings.TrimSpace(position.ID) == "" {
				return errors.NewConfigError(errors.ErrCodeInvalidCatalog,
					"position with empty id", nil).WithContext("company_id", company.ID)
			}
			if seenPositions[position.ID] {
				return errors.NewConfigError(errors.ErrCodeInvalidCatalog,
					"duplicate position id", nil).WithContext("position_id", position.ID)
			}
			seenPositions[position.ID] = true

			if len(position.SkillsRequired) == 0 {
				return errors.NewConfigError(errors.ErrCodeInvalidCatalog,
					"position has no required skills", nil).WithContext("position_id", position.ID)
			}
			if position.SalaryRange.Min < 0 || position.SalaryRange.Min > position.SalaryRange.Max {
				return errors.NewConfigError(errors.ErrCodeInvalidCatalog,
					"position has invalid salary range", nil).
					WithContext("position_id", position.ID).
					WithContext("min", position.SalaryRange.Min).
					WithContext("max", position.SalaryRange.Max)
			}
		}
	}

	return nil
}
