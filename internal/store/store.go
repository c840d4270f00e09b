// Package store defines the persistence boundary of the engine: the
// constraint dataset store, the project boundary store, and the analysis
// snapshot cache. Two implementations exist, Postgres (PostGIS) for
// deployments and SQLite for local work.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/arden-renewables/sitescope/internal/geometry"
)

// ErrNoBoundary indicates an analysis was requested for a project with
// no uploaded boundary.
var ErrNoBoundary = eris.New("store: no project boundary uploaded")

// ErrDatasetFetch indicates an I/O failure talking to the dataset
// store, distinct from an empty result.
var ErrDatasetFetch = eris.New("store: dataset fetch failed")

// IsNoBoundary reports whether err wraps ErrNoBoundary.
func IsNoBoundary(err error) bool { return eris.Is(err, ErrNoBoundary) }

// IsDatasetFetch reports whether err wraps ErrDatasetFetch.
func IsDatasetFetch(err error) bool { return eris.Is(err, ErrDatasetFetch) }

// ConstraintFeature is one record from the constraint dataset. Type is
// the mandatory discriminator matching a catalog constraint id; records
// are validated here at the store boundary, not in the evaluator.
type ConstraintFeature struct {
	Type       string         `json:"type"`
	Name       string         `json:"name"`
	Geometry   geom.T         `json:"-"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Validate checks the mandatory discriminator and geometry handle. A
// non-nil geometry with no coordinates (decoders produce these from
// empty WKB or GeoJSON) is as unusable as a nil one and is rejected
// the same way.
func (f ConstraintFeature) Validate() error {
	if f.Type == "" {
		return eris.New("store: constraint feature missing type")
	}
	if f.Geometry == nil {
		return eris.Errorf("store: constraint feature %q has no geometry", f.Name)
	}
	if len(f.Geometry.FlatCoords()) == 0 {
		return eris.Errorf("store: constraint feature %q has empty geometry", f.Name)
	}
	return nil
}

// Snapshot is a persisted copy of one analysis result. It is a display
// cache only: a fresh run always supersedes it.
type Snapshot struct {
	ID           string          `json:"id"`
	ProjectID    string          `json:"project_id"`
	GeneratedAt  time.Time       `json:"generated_at"`
	OverallScore float64         `json:"overall_score"`
	Status       string          `json:"status"`
	Raw          json.RawMessage `json:"raw"`
}

// Store is the persistence interface consumed by the analysis runner
// and the HTTP server.
type Store interface {
	// FetchFeaturesByType returns every dataset feature of one
	// constraint type. An empty slice (never an error) means no data
	// matches — the evaluator's absence-is-positive rule depends on
	// this distinction.
	FetchFeaturesByType(ctx context.Context, constraintTypeID string) ([]ConstraintFeature, error)

	// InsertFeature loads one dataset feature. Invalid features are
	// rejected here, at the boundary, so fetches never return them.
	InsertFeature(ctx context.Context, f ConstraintFeature) error

	// FetchProjectBoundary returns the project boundary, or nil when
	// none has been uploaded yet.
	FetchProjectBoundary(ctx context.Context, projectID string) (*geometry.Feature, error)

	// SaveBoundary stores the canonical boundary for a project,
	// replacing any previous one.
	SaveBoundary(ctx context.Context, projectID string, boundary geometry.Feature) error

	// SaveSnapshot persists an analysis snapshot.
	SaveSnapshot(ctx context.Context, snap Snapshot) error

	// LatestSnapshot returns the most recent snapshot for a project,
	// or nil when none exists.
	LatestSnapshot(ctx context.Context, projectID string) (*Snapshot, error)

	// Migrate applies schema migrations.
	Migrate(ctx context.Context) error

	Close() error
}
