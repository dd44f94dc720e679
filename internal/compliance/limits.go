// Package compliance classifies the legal risk of renewing a fixed-term contract.
//
// The renewal limits are jurisdiction-specific. Colombia is built in; other
// jurisdictions are loaded from a YAML table.
package compliance

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultJurisdiction is the jurisdiction used when none is configured.
const DefaultJurisdiction = "CO"

const daysPerYear = 365

// Limits are the statutory fixed-term renewal limits of a jurisdiction.
type Limits struct {
	// CeilingYears is the cumulative fixed-term tenure after which the contract must be indefinite.
	CeilingYears float64 `yaml:"ceiling_years" json:"ceiling_years" validate:"gt=0"`
	// ApproachingYears starts the "close to the ceiling" warning band.
	ApproachingYears float64 `yaml:"approaching_years" json:"approaching_years" validate:"gte=0,ltefield=CeilingYears"`
	// MinimumTermRenewal is the renewal number that must last at least MinimumTermDays.
	MinimumTermRenewal int `yaml:"minimum_term_renewal" json:"minimum_term_renewal" validate:"gte=1"`
	MinimumTermDays    int `yaml:"minimum_term_days" json:"minimum_term_days" validate:"gte=1"`
}

// Colombia holds the limits of the Colombian labor code for fixed-term contracts.
var Colombia = Limits{
	CeilingYears:       4,
	ApproachingYears:   3.5,
	MinimumTermRenewal: 5,
	MinimumTermDays:    365,
}

type jurisdictionFile struct {
	Jurisdictions map[string]Limits `yaml:"jurisdictions"`
}

// LoadJurisdictions reads a YAML jurisdiction table. The built-in entry for
// DefaultJurisdiction is present unless the file overrides it.
func LoadJurisdictions(path string) (map[string]Limits, error) {
	table := map[string]Limits{DefaultJurisdiction: Colombia}
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jurisdictions file %s: %w", path, err)
	}

	var f jurisdictionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse jurisdictions file %s: %w", path, err)
	}

	validate := validator.New()
	for code, limits := range f.Jurisdictions {
		if err := validate.Struct(limits); err != nil {
			return nil, fmt.Errorf("invalid limits for jurisdiction %s: %w", code, err)
		}
		table[code] = limits
	}
	return table, nil
}

// LimitsFor resolves the limits of a jurisdiction code from the table at path.
func LimitsFor(code, path string) (Limits, error) {
	table, err := LoadJurisdictions(path)
	if err != nil {
		return Limits{}, err
	}
	if code == "" {
		code = DefaultJurisdiction
	}
	limits, ok := table[code]
	if !ok {
		return Limits{}, fmt.Errorf("unknown jurisdiction %q", code)
	}
	return limits, nil
}
