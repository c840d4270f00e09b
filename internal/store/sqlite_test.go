package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func newSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLiteFeatureRoundTrip(t *testing.T) {
	st := newSQLite(t)
	ctx := context.Background()

	require.NoError(t, st.InsertFeature(ctx, ConstraintFeature{
		Type: "sssi", Name: "Holcroft Moss",
		Geometry:   geom.NewPointFlat(geom.XY, []float64{-2.45, 53.42}),
		Properties: map[string]any{"designation_year": 1990.0},
	}))

	features, err := st.FetchFeaturesByType(ctx, "sssi")
	require.NoError(t, err)
	require.Len(t, features, 1)

	f := features[0]
	assert.Equal(t, "sssi", f.Type)
	assert.Equal(t, "Holcroft Moss", f.Name)
	assert.Equal(t, map[string]any{"designation_year": 1990.0}, f.Properties)

	pt, ok := f.Geometry.(*geom.Point)
	require.True(t, ok)
	assert.InDelta(t, -2.45, pt.X(), 1e-9)
	assert.InDelta(t, 53.42, pt.Y(), 1e-9)
}

func TestSQLiteFetchFeaturesByType_EmptyIsNotError(t *testing.T) {
	st := newSQLite(t)

	features, err := st.FetchFeaturesByType(context.Background(), "ramsar")
	require.NoError(t, err)
	assert.NotNil(t, features)
	assert.Empty(t, features)
}

func TestSQLiteInsertFeature_RejectsInvalid(t *testing.T) {
	st := newSQLite(t)

	err := st.InsertFeature(context.Background(), ConstraintFeature{Name: "no type or geometry"})
	require.Error(t, err)
}

func TestSQLiteBoundaryRoundTrip(t *testing.T) {
	st := newSQLite(t)
	ctx := context.Background()

	// Nothing uploaded yet.
	boundary, err := st.FetchProjectBoundary(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, boundary)

	require.NoError(t, st.SaveBoundary(ctx, "p1", boundaryFixture()))

	boundary, err = st.FetchProjectBoundary(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, boundary)
	assert.Equal(t, "Holford Park", boundary.Name)
	assert.IsType(t, &geom.Polygon{}, boundary.Geometry)

	// Saving again replaces, not duplicates.
	updated := boundaryFixture()
	updated.Name = "Holford Park Revised"
	require.NoError(t, st.SaveBoundary(ctx, "p1", updated))

	boundary, err = st.FetchProjectBoundary(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Holford Park Revised", boundary.Name)
}

func TestSQLiteSnapshotLatestWins(t *testing.T) {
	st := newSQLite(t)
	ctx := context.Background()

	snap, err := st.LatestSnapshot(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, snap)

	older := Snapshot{
		ID: "run-1", ProjectID: "p1",
		GeneratedAt:  time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		OverallScore: 55, Status: "moderate",
		Raw: json.RawMessage(`{"overall_score":55}`),
	}
	newer := Snapshot{
		ID: "run-2", ProjectID: "p1",
		GeneratedAt:  time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		OverallScore: 80, Status: "good",
		Raw: json.RawMessage(`{"overall_score":80}`),
	}
	require.NoError(t, st.SaveSnapshot(ctx, older))
	require.NoError(t, st.SaveSnapshot(ctx, newer))

	snap, err = st.LatestSnapshot(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "run-2", snap.ID)
	assert.Equal(t, 80.0, snap.OverallScore)
	assert.JSONEq(t, `{"overall_score":80}`, string(snap.Raw))
}
