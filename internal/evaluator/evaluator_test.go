package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/arden-renewables/sitescope/internal/catalog"
	"github.com/arden-renewables/sitescope/internal/geometry"
	"github.com/arden-renewables/sitescope/internal/store"
)

func testConfig() catalog.ConstraintConfig {
	return catalog.ConstraintConfig{
		ID: "sssi", Name: "Site of Special Scientific Interest",
		Category: catalog.CategoryEnvironmental, BufferDistanceMeters: 5000, Weight: 1.0,
		Scoring: catalog.Scoring{
			Challenging: catalog.Tier{ThresholdMeters: 500, Score: 20},
			Moderate:    catalog.Tier{ThresholdMeters: 2000, Score: 55},
			Good:        catalog.Tier{ThresholdMeters: 5000, Score: 90},
		},
		OutputTemplate: "{count} within buffer; nearest {name} at {distance}",
	}
}

func testBoundary() geometry.Feature {
	return geometry.Feature{
		Name: "Test Site",
		Geometry: geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{{
			{-2.5, 53.3}, {-2.3, 53.3}, {-2.3, 53.5}, {-2.5, 53.5}, {-2.5, 53.3},
		}}),
	}
}

// featureAtOffset places a point feature at approximately the given
// distance in meters due east of the boundary's eastern edge midpoint.
func featureAtOffset(name string, meters float64) store.ConstraintFeature {
	// At 53.4N one degree of longitude is about 66400m.
	lonOffset := meters / 66400.0
	return store.ConstraintFeature{
		Type: "sssi", Name: name,
		Geometry: geom.NewPointFlat(geom.XY, []float64{-2.3 + lonOffset, 53.4}),
	}
}

func intersectingFeature(name string) store.ConstraintFeature {
	return store.ConstraintFeature{
		Type: "sssi", Name: name,
		Geometry: geom.NewPointFlat(geom.XY, []float64{-2.4, 53.4}),
	}
}

func TestEvaluate_AbsenceIsPositive(t *testing.T) {
	res := Evaluate(testConfig(), testBoundary(), nil)

	assert.Equal(t, StatusGood, res.Status)
	assert.Equal(t, 100.0, res.Score)
	assert.Zero(t, res.IntersectingFeatureCount)
	assert.Nil(t, res.DistanceMeters)
	assert.Contains(t, res.Description, "No Site of Special Scientific Interest features recorded")
}

func TestEvaluate_AbsenceRuleHoldsForAnyConfig(t *testing.T) {
	for _, cfg := range catalog.Default().All() {
		res := Evaluate(cfg, testBoundary(), []store.ConstraintFeature{})
		assert.Equal(t, StatusGood, res.Status, cfg.ID)
		assert.Equal(t, 100.0, res.Score, cfg.ID)
		assert.Zero(t, res.IntersectingFeatureCount, cfg.ID)
	}
}

func TestEvaluate_IntersectionForcesChallenging(t *testing.T) {
	res := Evaluate(testConfig(), testBoundary(), []store.ConstraintFeature{
		intersectingFeature("Moss Fen"),
	})

	assert.Equal(t, StatusChallenging, res.Status)
	assert.Equal(t, 20.0, res.Score)
	assert.Equal(t, 1, res.IntersectingFeatureCount)
	require.NotNil(t, res.DistanceMeters)
	assert.Zero(t, *res.DistanceMeters)
	assert.Equal(t, "Moss Fen", res.NearestFeatureName)
}

func TestEvaluate_DistanceTiers(t *testing.T) {
	tests := []struct {
		name       string
		meters     float64
		wantStatus Status
		wantScore  float64
	}{
		{"inside challenging threshold", 300, StatusChallenging, 20},
		{"inside moderate threshold", 1500, StatusModerate, 55},
		{"beyond moderate threshold", 3500, StatusGood, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(testConfig(), testBoundary(), []store.ConstraintFeature{
				featureAtOffset("Heath", tt.meters),
			})
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantScore, res.Score)
		})
	}
}

func TestEvaluate_TracksNearestAcrossFeatures(t *testing.T) {
	res := Evaluate(testConfig(), testBoundary(), []store.ConstraintFeature{
		featureAtOffset("Far Moor", 4000),
		featureAtOffset("Near Carr", 1200),
		featureAtOffset("Mid Bank", 2500),
	})

	assert.Equal(t, "Near Carr", res.NearestFeatureName)
	assert.Equal(t, StatusModerate, res.Status)
	require.NotNil(t, res.DistanceMeters)
	assert.InDelta(t, 1200, *res.DistanceMeters, 150)
	assert.Equal(t, 3, res.WithinBufferCount)
}

func TestEvaluate_MalformedFeatureSkippedNotFatal(t *testing.T) {
	res := Evaluate(testConfig(), testBoundary(), []store.ConstraintFeature{
		{Type: "sssi", Name: "Broken", Geometry: nil},
		featureAtOffset("Intact", 1500),
	})

	assert.Equal(t, 1, res.SkippedFeatures)
	assert.Equal(t, StatusModerate, res.Status)
	assert.Equal(t, "Intact", res.NearestFeatureName)
}

func TestEvaluate_EmptyGeometrySkippedNotIntersecting(t *testing.T) {
	// A non-nil geometry with zero coordinates must be skipped like a
	// nil one, never treated as an on-site feature at distance zero.
	res := Evaluate(testConfig(), testBoundary(), []store.ConstraintFeature{
		{Type: "sssi", Name: "Hollow", Geometry: geom.NewPolygon(geom.XY)},
	})

	assert.Equal(t, 1, res.SkippedFeatures)
	assert.Equal(t, StatusGood, res.Status)
	assert.Equal(t, 100.0, res.Score)
	assert.Zero(t, res.IntersectingFeatureCount)
	assert.Nil(t, res.DistanceMeters)
}

func TestEvaluate_AllMalformedScoresAsAbsent(t *testing.T) {
	res := Evaluate(testConfig(), testBoundary(), []store.ConstraintFeature{
		{Type: "sssi", Name: "Broken A", Geometry: nil},
		{Type: "sssi", Name: "Broken B", Geometry: nil},
	})

	assert.Equal(t, StatusGood, res.Status)
	assert.Equal(t, 100.0, res.Score)
	assert.Equal(t, 2, res.SkippedFeatures)
	assert.Nil(t, res.DistanceMeters)
}

func TestEvaluate_Deterministic(t *testing.T) {
	features := []store.ConstraintFeature{
		featureAtOffset("A", 800),
		featureAtOffset("B", 2500),
		intersectingFeature("C"),
	}

	first := Evaluate(testConfig(), testBoundary(), features)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Evaluate(testConfig(), testBoundary(), features))
	}
}

func TestEvaluate_MonotoneInDistance(t *testing.T) {
	// Decreasing distance never increases the score.
	distances := []float64{4500, 3000, 1800, 1000, 400, 100}
	prev := 101.0
	for _, d := range distances {
		res := Evaluate(testConfig(), testBoundary(), []store.ConstraintFeature{
			featureAtOffset("X", d),
		})
		assert.LessOrEqual(t, res.Score, prev, "distance %g", d)
		prev = res.Score
	}

	// Adding an intersecting feature never increases the score either.
	base := Evaluate(testConfig(), testBoundary(), []store.ConstraintFeature{
		featureAtOffset("X", 3000),
	})
	withHit := Evaluate(testConfig(), testBoundary(), []store.ConstraintFeature{
		featureAtOffset("X", 3000),
		intersectingFeature("Y"),
	})
	assert.LessOrEqual(t, withHit.Score, base.Score)
}

func TestEvaluate_MonotoneForAllDefaultConfigs(t *testing.T) {
	// Every shipped config must honor the same rule the synthetic config
	// above does: a nearer feature never scores higher than a farther
	// one. Distances straddle every default tier threshold.
	distances := []float64{12000, 9000, 4000, 1500, 400, 100}

	for _, cfg := range catalog.Default().All() {
		prev := 101.0
		for _, d := range distances {
			f := featureAtOffset("X", d)
			f.Type = cfg.ID
			res := Evaluate(cfg, testBoundary(), []store.ConstraintFeature{f})
			assert.LessOrEqual(t, res.Score, prev, "%s at %gm", cfg.ID, d)
			prev = res.Score
		}

		hit := intersectingFeature("Y")
		hit.Type = cfg.ID
		res := Evaluate(cfg, testBoundary(), []store.ConstraintFeature{hit})
		assert.LessOrEqual(t, res.Score, prev, "%s intersecting", cfg.ID)
		assert.Equal(t, StatusChallenging, res.Status, cfg.ID)
	}
}

func TestSelectTier_BoundaryExactness(t *testing.T) {
	s := testConfig().Scoring

	// Exactly at the moderate threshold: moderate, not good or
	// challenging (inclusive <= semantics).
	status, score := selectTier(s, 0, s.Moderate.ThresholdMeters)
	assert.Equal(t, StatusModerate, status)
	assert.Equal(t, 55.0, score)

	// Exactly at the challenging threshold: challenging.
	status, score = selectTier(s, 0, s.Challenging.ThresholdMeters)
	assert.Equal(t, StatusChallenging, status)
	assert.Equal(t, 20.0, score)

	// Just past the moderate threshold: good.
	status, _ = selectTier(s, 0, s.Moderate.ThresholdMeters+0.001)
	assert.Equal(t, StatusGood, status)
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "n/a", FormatDistance(nil))

	zero := 0.0
	assert.Equal(t, "0m (intersecting)", FormatDistance(&zero))

	m := 350.4
	assert.Equal(t, "350m", FormatDistance(&m))

	km := 1234.0
	assert.Equal(t, "1.2km", FormatDistance(&km))
}

func TestEvaluate_DescriptionUsesTemplate(t *testing.T) {
	res := Evaluate(testConfig(), testBoundary(), []store.ConstraintFeature{
		featureAtOffset("Holcroft Moss", 1200),
	})
	assert.Contains(t, res.Description, "1 within buffer")
	assert.Contains(t, res.Description, "Holcroft Moss")
}
