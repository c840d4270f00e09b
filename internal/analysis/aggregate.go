// Package analysis rolls per-constraint evaluation results up into
// category scores and one overall developability score, and orchestrates
// full analysis runs against the dataset store.
package analysis

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/arden-renewables/sitescope/internal/catalog"
	"github.com/arden-renewables/sitescope/internal/evaluator"
)

// CategoryAnalysis summarizes one constraint category.
type CategoryAnalysis struct {
	Category    catalog.Category   `json:"category"`
	Score       float64            `json:"score"`
	Status      evaluator.Status   `json:"status"`
	Constraints []evaluator.Result `json:"constraints"`
}

// Summary carries the headline numbers and recommendations of a run.
type Summary struct {
	TotalAnalyzed        int      `json:"total_analyzed"`
	WithinBufferCount    int      `json:"within_buffer_count"`
	MajorConstraintNames []string `json:"major_constraint_names"`
	Recommendations      []string `json:"recommendations"`
}

// Result is the root object of one analysis run. Immutable once
// returned; report and export collaborators consume it as their sole
// input.
type Result struct {
	RunID         string             `json:"run_id,omitempty"`
	ProjectID     string             `json:"project_id,omitempty"`
	GeneratedAt   time.Time          `json:"generated_at,omitempty"`
	OverallScore  float64            `json:"overall_score"`
	OverallStatus evaluator.Status   `json:"overall_status"`
	Categories    []CategoryAnalysis `json:"categories"`
	Constraints   []evaluator.Result `json:"constraints"`
	Summary       Summary            `json:"summary"`
}

// Category and overall status thresholds.
const (
	goodThreshold     = 80.0
	moderateThreshold = 60.0
)

func statusForScore(score float64) evaluator.Status {
	switch {
	case score >= goodThreshold:
		return evaluator.StatusGood
	case score >= moderateThreshold:
		return evaluator.StatusModerate
	default:
		return evaluator.StatusChallenging
	}
}

// Aggregate combines per-constraint results into the final analysis.
// Constraints and categories come out in catalog order regardless of
// the order results arrive in, so parallel evaluation stays
// deterministic.
func Aggregate(results []evaluator.Result, cat *catalog.Catalog) Result {
	ordered, weights := orderByCatalog(results, cat)

	if len(ordered) == 0 {
		// Never return a success-looking empty result.
		return Result{
			OverallScore:  0,
			OverallStatus: evaluator.StatusChallenging,
			Categories:    []CategoryAnalysis{},
			Constraints:   []evaluator.Result{},
			Summary: Summary{
				Recommendations: []string{
					"No constraint assessment could be performed: no constraints were evaluable for this site",
				},
			},
		}
	}

	out := Result{
		Constraints: ordered,
		Categories:  buildCategories(ordered, weights),
	}

	// Overall score is the weighted mean over all constraints, not a
	// mean of category means — categories with many constraint types
	// must not be double-weighted.
	var weightedSum, weightSum float64
	for _, r := range ordered {
		w := weights[r.ConstraintID]
		weightedSum += r.Score * w
		weightSum += w
	}
	out.OverallScore = round2(weightedSum / weightSum)
	out.OverallStatus = statusForScore(out.OverallScore)

	out.Summary = buildSummary(ordered, out.OverallScore)
	return out
}

// orderByCatalog filters results to known constraint ids and sorts them
// into catalog order, returning the weight lookup alongside.
func orderByCatalog(results []evaluator.Result, cat *catalog.Catalog) ([]evaluator.Result, map[string]float64) {
	byID := make(map[string]evaluator.Result, len(results))
	for _, r := range results {
		byID[r.ConstraintID] = r
	}

	ordered := make([]evaluator.Result, 0, len(results))
	weights := make(map[string]float64, len(results))
	for _, cfg := range cat.All() {
		r, ok := byID[cfg.ID]
		if !ok {
			continue
		}
		ordered = append(ordered, r)
		weights[cfg.ID] = cfg.Weight
	}
	return ordered, weights
}

// buildCategories produces weighted category summaries in the fixed
// category order. Categories with no evaluated constraints are omitted:
// absence is not a score.
func buildCategories(ordered []evaluator.Result, weights map[string]float64) []CategoryAnalysis {
	grouped := make(map[catalog.Category][]evaluator.Result)
	for _, r := range ordered {
		grouped[r.Category] = append(grouped[r.Category], r)
	}

	out := make([]CategoryAnalysis, 0, len(grouped))
	for _, c := range catalog.Categories {
		members := grouped[c]
		if len(members) == 0 {
			continue
		}
		var weightedSum, weightSum float64
		for _, r := range members {
			w := weights[r.ConstraintID]
			weightedSum += r.Score * w
			weightSum += w
		}
		score := round2(weightedSum / weightSum)
		out = append(out, CategoryAnalysis{
			Category:    c,
			Score:       score,
			Status:      statusForScore(score),
			Constraints: members,
		})
	}
	return out
}

// buildSummary derives headline numbers and the rule-based
// recommendations, evaluated in fixed order, each rule appending at
// most one line.
func buildSummary(ordered []evaluator.Result, overallScore float64) Summary {
	s := Summary{TotalAnalyzed: len(ordered)}

	for _, r := range ordered {
		s.WithinBufferCount += r.WithinBufferCount
		if r.Status == evaluator.StatusChallenging {
			s.MajorConstraintNames = append(s.MajorConstraintNames, r.Name)
		}
	}

	if len(s.MajorConstraintNames) > 0 {
		listed := s.MajorConstraintNames
		suffix := ""
		if len(listed) > 3 {
			suffix = fmt.Sprintf(" and %d more", len(listed)-3)
			listed = listed[:3]
		}
		s.Recommendations = append(s.Recommendations, fmt.Sprintf(
			"Major constraints identified (%d): %s%s; engage planning consultees early",
			len(s.MajorConstraintNames), strings.Join(listed, ", "), suffix))
	}

	if s.WithinBufferCount > 5 {
		s.Recommendations = append(s.Recommendations,
			"High constraint density around the site; consider alternative site locations")
	}

	if overallScore < moderateThreshold {
		s.Recommendations = append(s.Recommendations,
			"Commission a full Environmental Impact Assessment before progressing the application")
	}

	if len(s.Recommendations) == 0 {
		s.Recommendations = append(s.Recommendations,
			"The site shows good development potential with no major planning obstacles identified")
	}

	return s
}

func round2(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Round(v*100) / 100
}
