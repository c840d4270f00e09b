// Package catalog holds the static configuration of every spatial
// constraint type the engine can score a site against. The catalog is a
// config-time artifact: constructed once at startup, validated, then
// read-only. Adding a constraint type means appending an entry; no other
// component changes.
package catalog

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Category groups constraint types for reporting.
type Category string

const (
	CategoryEnvironmental  Category = "environmental"
	CategoryHeritage       Category = "heritage"
	CategoryLandscape      Category = "landscape"
	CategoryPlanning       Category = "planning"
	CategoryInfrastructure Category = "infrastructure"
	CategoryClimatology    Category = "climatology"
	CategoryOrography      Category = "orography"
	CategoryEconomic       Category = "economic"
)

// Categories is the fixed reporting order.
var Categories = []Category{
	CategoryEnvironmental,
	CategoryHeritage,
	CategoryLandscape,
	CategoryPlanning,
	CategoryInfrastructure,
	CategoryClimatology,
	CategoryOrography,
	CategoryEconomic,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Tier pairs a distance threshold with the score awarded when the
// nearest feature falls inside it.
type Tier struct {
	ThresholdMeters float64 `yaml:"threshold_meters" json:"threshold_meters"`
	Score           float64 `yaml:"score" json:"score"`
}

// Scoring holds the three tiers of a constraint. Thresholds and scores
// must both be ordered challenging <= moderate <= good; New enforces
// this.
type Scoring struct {
	Good        Tier `yaml:"good" json:"good"`
	Moderate    Tier `yaml:"moderate" json:"moderate"`
	Challenging Tier `yaml:"challenging" json:"challenging"`
}

// ConstraintConfig describes one constraint type.
type ConstraintConfig struct {
	ID                   string   `yaml:"id" json:"id"`
	Name                 string   `yaml:"name" json:"name"`
	Category             Category `yaml:"category" json:"category"`
	BufferDistanceMeters float64  `yaml:"buffer_distance_meters" json:"buffer_distance_meters"`
	Scoring              Scoring  `yaml:"scoring" json:"scoring"`
	Weight               float64  `yaml:"weight" json:"weight"`
	// OutputTemplate renders the human-readable result line. Supported
	// placeholders: {count}, {name}, {distance}.
	OutputTemplate string `yaml:"output_template" json:"output_template"`
}

// Catalog is an ordered, immutable list of constraint configs.
type Catalog struct {
	entries []ConstraintConfig
	byID    map[string]ConstraintConfig
}

// New validates the entries and builds a catalog. Tier misordering is a
// configuration error, never silently accepted.
func New(entries []ConstraintConfig) (*Catalog, error) {
	var errs []string
	byID := make(map[string]ConstraintConfig, len(entries))

	for _, e := range entries {
		if e.ID == "" {
			errs = append(errs, "entry with empty id")
			continue
		}
		if _, dup := byID[e.ID]; dup {
			errs = append(errs, fmt.Sprintf("%s: duplicate id", e.ID))
		}
		if e.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: name required", e.ID))
		}
		if !e.Category.Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown category %q", e.ID, e.Category))
		}
		if e.Weight <= 0 {
			errs = append(errs, fmt.Sprintf("%s: weight must be > 0", e.ID))
		}
		if e.BufferDistanceMeters < 0 {
			errs = append(errs, fmt.Sprintf("%s: buffer distance must be >= 0", e.ID))
		}
		s := e.Scoring
		if s.Challenging.ThresholdMeters > s.Moderate.ThresholdMeters ||
			s.Moderate.ThresholdMeters > s.Good.ThresholdMeters {
			errs = append(errs, fmt.Sprintf(
				"%s: tier thresholds must be ordered challenging <= moderate <= good (got %g, %g, %g)",
				e.ID, s.Challenging.ThresholdMeters, s.Moderate.ThresholdMeters, s.Good.ThresholdMeters))
		}
		// Score ordering keeps every config monotone: a nearer feature
		// can never score higher than a farther one.
		if s.Challenging.Score > s.Moderate.Score || s.Moderate.Score > s.Good.Score {
			errs = append(errs, fmt.Sprintf(
				"%s: tier scores must be ordered challenging <= moderate <= good (got %g, %g, %g)",
				e.ID, s.Challenging.Score, s.Moderate.Score, s.Good.Score))
		}
		for name, tier := range map[string]Tier{"good": s.Good, "moderate": s.Moderate, "challenging": s.Challenging} {
			if tier.Score < 0 || tier.Score > 100 {
				errs = append(errs, fmt.Sprintf("%s: %s score must be 0-100", e.ID, name))
			}
		}
		byID[e.ID] = e
	}

	if len(errs) > 0 {
		return nil, eris.Errorf("catalog: validation failed: %s", strings.Join(errs, "; "))
	}

	return &Catalog{entries: entries, byID: byID}, nil
}

// All returns the entries in catalog order. The slice is a copy.
func (c *Catalog) All() []ConstraintConfig {
	out := make([]ConstraintConfig, len(c.entries))
	copy(out, c.entries)
	return out
}

// ByID looks up a constraint config by its id.
func (c *Catalog) ByID(id string) (ConstraintConfig, bool) {
	cfg, ok := c.byID[id]
	return cfg, ok
}

// ByCategory returns the entries of one category, preserving catalog
// order.
func (c *Catalog) ByCategory(cat Category) []ConstraintConfig {
	var out []ConstraintConfig
	for _, e := range c.entries {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of constraint types.
func (c *Catalog) Len() int { return len(c.entries) }
