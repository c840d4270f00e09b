// Package evaluator scores one constraint type against one project
// boundary. It is pure computation: dataset features are handed in by
// the caller, so evaluations are deterministic and trivially parallel.
package evaluator

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/arden-renewables/sitescope/internal/catalog"
	"github.com/arden-renewables/sitescope/internal/geometry"
	"github.com/arden-renewables/sitescope/internal/store"
)

// Status is the red-amber-green rating of a constraint or category.
type Status string

const (
	StatusGood        Status = "good"
	StatusModerate    Status = "moderate"
	StatusChallenging Status = "challenging"
)

// Result is the outcome of evaluating one constraint type. Recomputed
// on every analysis run, never treated as persistent truth.
type Result struct {
	ConstraintID string          `json:"constraint_id"`
	Name         string          `json:"name"`
	Category     catalog.Category `json:"category"`
	Status       Status          `json:"status"`
	Score        float64         `json:"score"`
	// DistanceMeters is nil when no dataset features were available,
	// so "no data" is never mistaken for a measured distance.
	DistanceMeters           *float64 `json:"distance_meters,omitempty"`
	IntersectingFeatureCount int      `json:"intersecting_feature_count"`
	WithinBufferCount        int      `json:"within_buffer_count"`
	NearestFeatureName       string   `json:"nearest_feature_name,omitempty"`
	Description              string   `json:"description"`
	// Degraded marks a result produced without data because the
	// dataset fetch timed out or failed. Scored as if absent, but
	// flagged so reports never claim certainty they do not have.
	Degraded bool `json:"degraded,omitempty"`
	// SkippedFeatures counts dataset records dropped for malformed
	// geometry during this evaluation.
	SkippedFeatures int `json:"skipped_features,omitempty"`
}

// Evaluate scores one constraint type. An empty feature list yields the
// good tier at score 100: absence of data is a developability positive
// by policy, not an unknown — the dataset store guarantees an empty
// result means "nothing there", not "lookup failed".
func Evaluate(cfg catalog.ConstraintConfig, boundary geometry.Feature, features []store.ConstraintFeature) Result {
	res := Result{
		ConstraintID: cfg.ID,
		Name:         cfg.Name,
		Category:     cfg.Category,
	}

	if len(features) == 0 {
		res.Status = StatusGood
		res.Score = 100
		res.Description = fmt.Sprintf("No %s features recorded within the search area", cfg.Name)
		return res
	}

	minDistance := math.Inf(1)
	for _, f := range features {
		if err := f.Validate(); err != nil {
			res.SkippedFeatures++
			zap.L().Warn("evaluator: skipping malformed dataset feature",
				zap.String("constraint", cfg.ID),
				zap.String("feature", f.Name),
				zap.Error(err),
			)
			continue
		}

		meters, intersects := geometry.Proximity(boundary.Geometry, f.Geometry)
		if intersects {
			res.IntersectingFeatureCount++
		}
		if meters <= cfg.BufferDistanceMeters {
			res.WithinBufferCount++
		}
		if meters < minDistance {
			minDistance = meters
			res.NearestFeatureName = f.Name
		}
	}

	// Every record was malformed: same policy as an empty dataset.
	if math.IsInf(minDistance, 1) {
		res.Status = StatusGood
		res.Score = 100
		res.Description = fmt.Sprintf("No usable %s features in the dataset", cfg.Name)
		return res
	}

	res.DistanceMeters = &minDistance
	res.Status, res.Score = selectTier(cfg.Scoring, res.IntersectingFeatureCount, minDistance)
	res.Description = renderDescription(cfg, res)
	return res
}

// selectTier applies the tier priority order. Intersection forces the
// challenging tier regardless of numeric distance: on-site presence of
// a constraint is worse than mere proximity.
func selectTier(s catalog.Scoring, intersecting int, minDistance float64) (Status, float64) {
	switch {
	case intersecting > 0 || minDistance <= s.Challenging.ThresholdMeters:
		return StatusChallenging, s.Challenging.Score
	case minDistance <= s.Moderate.ThresholdMeters:
		return StatusModerate, s.Moderate.Score
	default:
		return StatusGood, s.Good.Score
	}
}

// renderDescription substitutes the discovered values into the
// constraint's output template.
func renderDescription(cfg catalog.ConstraintConfig, res Result) string {
	name := res.NearestFeatureName
	if name == "" {
		name = "an unnamed feature"
	}
	r := strings.NewReplacer(
		"{count}", fmt.Sprintf("%d", res.WithinBufferCount),
		"{name}", name,
		"{distance}", FormatDistance(res.DistanceMeters),
	)
	return r.Replace(cfg.OutputTemplate)
}

// FormatDistance renders a distance with its unit, or "n/a" when no
// distance was measured.
func FormatDistance(meters *float64) string {
	if meters == nil {
		return "n/a"
	}
	m := *meters
	if m <= 0 {
		return "0m (intersecting)"
	}
	if m < 1000 {
		return fmt.Sprintf("%.0fm", m)
	}
	return fmt.Sprintf("%.1fkm", m/1000)
}
