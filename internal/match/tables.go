// Package match implements multi-factor compatibility scoring between
// professional profiles.
package match

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Tables holds the static lookup data the engine scores against. The tables
// are immutable once loaded; scoring never mutates them.
type Tables struct {
	// IndustryAffinity maps industry -> industry -> affinity in [0,1].
	// Lookups are asymmetric: affinity[a][b] need not equal affinity[b][a].
	IndustryAffinity map[string]map[string]float64 `yaml:"industry_affinity"`

	// SeniorityTiers is checked in order; the first tier whose keyword
	// appears in the title wins.
	SeniorityTiers []SeniorityTier `yaml:"seniority_tiers"`
}

// SeniorityTier maps title keywords to an organizational level.
type SeniorityTier struct {
	Level    int      `yaml:"level"`
	Keywords []string `yaml:"keywords"`
}

// DefaultTables returns the built-in lookup tables.
func DefaultTables() Tables {
	return Tables{
		IndustryAffinity: map[string]map[string]float64{
			"technology": {"finance": 0.8, "healthcare": 0.7, "technology": 0.9, "marketing": 0.75},
			"finance":    {"technology": 0.8, "real-estate": 0.9, "finance": 0.6, "consulting": 0.85},
			"healthcare": {"technology": 0.7, "pharmaceuticals": 0.9, "healthcare": 0.5, "research": 0.8},
			"marketing":  {"technology": 0.75, "retail": 0.8, "media": 0.9, "marketing": 0.6},
			"consulting": {"finance": 0.85, "technology": 0.75, "healthcare": 0.7, "consulting": 0.5},
		},
		SeniorityTiers: []SeniorityTier{
			{Level: 5, Keywords: []string{"ceo", "founder", "president", "owner"}},
			{Level: 4, Keywords: []string{"director", "vp", "vice president", "head"}},
			{Level: 3, Keywords: []string{"manager", "lead", "principal"}},
			{Level: 2, Keywords: []string{"senior", "sr"}},
		},
	}
}

// LoadTables reads table overrides from a YAML file. Sections absent from the
// file keep their built-in values.
func LoadTables(path string) (Tables, error) {
	tables := DefaultTables()

	data, err := os.ReadFile(path)
	if err != nil {
		return tables, eris.Wrapf(err, "match: read tables %s", path)
	}

	var override Tables
	if err := yaml.Unmarshal(data, &override); err != nil {
		return tables, eris.Wrapf(err, "match: parse tables %s", path)
	}

	if len(override.IndustryAffinity) > 0 {
		tables.IndustryAffinity = override.IndustryAffinity
	}
	if len(override.SeniorityTiers) > 0 {
		tables.SeniorityTiers = override.SeniorityTiers
	}

	if err := tables.Validate(); err != nil {
		return DefaultTables(), err
	}
	return tables, nil
}

// Validate checks table invariants: affinities in [0,1], tiers sorted
// descending with positive levels.
func (t Tables) Validate() error {
	for from, row := range t.IndustryAffinity {
		for to, affinity := range row {
			if affinity < 0 || affinity > 1 {
				return eris.Errorf("match: affinity %s->%s out of range: %v", from, to, affinity)
			}
		}
	}

	prev := 0
	for i, tier := range t.SeniorityTiers {
		if tier.Level <= 0 {
			return eris.Errorf("match: tier %d has non-positive level %d", i, tier.Level)
		}
		if len(tier.Keywords) == 0 {
			return eris.Errorf("match: tier level %d has no keywords", tier.Level)
		}
		if i > 0 && tier.Level >= prev {
			return eris.Errorf("match: tiers must be sorted by descending level, got %d after %d", tier.Level, prev)
		}
		prev = tier.Level
	}
	return nil
}
