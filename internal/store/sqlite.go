package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/arden-renewables/sitescope/internal/geometry"
)

// SQLiteStore implements Store using modernc.org/sqlite. Geometries are
// stored as GeoJSON text; there is no spatial index, which is fine for
// the local-workstation dataset sizes this backend targets.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path with WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS constraint_features (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	type       TEXT NOT NULL,
	name       TEXT NOT NULL DEFAULT '',
	geom       TEXT NOT NULL,
	properties TEXT,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS project_boundaries (
	project_id TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	geom       TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS analysis_snapshots (
	id            TEXT PRIMARY KEY,
	project_id    TEXT NOT NULL,
	generated_at  DATETIME NOT NULL,
	overall_score REAL NOT NULL,
	status        TEXT NOT NULL,
	raw           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_constraint_features_type ON constraint_features(type);
CREATE INDEX IF NOT EXISTS idx_analysis_snapshots_project ON analysis_snapshots(project_id, generated_at);
`

// Migrate implements Store.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// InsertFeature loads one dataset feature. Used by data-loading tooling
// and tests.
func (s *SQLiteStore) InsertFeature(ctx context.Context, f ConstraintFeature) error {
	if err := f.Validate(); err != nil {
		return err
	}
	geomJSON, err := geojson.Marshal(f.Geometry)
	if err != nil {
		return eris.Wrap(err, "sqlite: encode feature geometry")
	}
	var props []byte
	if f.Properties != nil {
		props, err = json.Marshal(f.Properties)
		if err != nil {
			return eris.Wrap(err, "sqlite: encode feature properties")
		}
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO constraint_features (type, name, geom, properties) VALUES (?, ?, ?, ?)`,
		f.Type, f.Name, string(geomJSON), nullableText(props))
	return eris.Wrap(err, "sqlite: insert feature")
}

// FetchFeaturesByType implements Store.
func (s *SQLiteStore) FetchFeaturesByType(ctx context.Context, constraintTypeID string) ([]ConstraintFeature, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, geom, properties FROM constraint_features WHERE type = ? ORDER BY id`,
		constraintTypeID)
	if err != nil {
		return nil, eris.Wrapf(ErrDatasetFetch, "sqlite: query features for %s: %v", constraintTypeID, err)
	}
	defer rows.Close()

	features := make([]ConstraintFeature, 0)
	var skipped int
	for rows.Next() {
		var name, geomJSON string
		var props sql.NullString
		if err := rows.Scan(&name, &geomJSON, &props); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan feature row")
		}

		var g geom.T
		if err := geojson.Unmarshal([]byte(geomJSON), &g); err != nil {
			skipped++
			continue
		}

		f := ConstraintFeature{Type: constraintTypeID, Name: name, Geometry: g}
		if props.Valid && props.String != "" {
			if err := json.Unmarshal([]byte(props.String), &f.Properties); err != nil {
				zap.L().Debug("store: unreadable feature properties", zap.String("name", name), zap.Error(err))
			}
		}
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrapf(ErrDatasetFetch, "sqlite: iterate feature rows: %v", err)
	}

	if skipped > 0 {
		zap.L().Warn("store: skipped undecodable feature geometries",
			zap.String("type", constraintTypeID),
			zap.Int("skipped", skipped),
		)
	}
	return features, nil
}

// FetchProjectBoundary implements Store.
func (s *SQLiteStore) FetchProjectBoundary(ctx context.Context, projectID string) (*geometry.Feature, error) {
	var name, geomJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT name, geom FROM project_boundaries WHERE project_id = ?`, projectID).
		Scan(&name, &geomJSON)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: fetch boundary %s", projectID)
	}

	var g geom.T
	if err := geojson.Unmarshal([]byte(geomJSON), &g); err != nil {
		return nil, eris.Wrapf(err, "sqlite: decode boundary %s", projectID)
	}
	return &geometry.Feature{Geometry: g, Name: name}, nil
}

// SaveBoundary implements Store.
func (s *SQLiteStore) SaveBoundary(ctx context.Context, projectID string, boundary geometry.Feature) error {
	geomJSON, err := geojson.Marshal(boundary.Geometry)
	if err != nil {
		return eris.Wrapf(err, "sqlite: encode boundary %s", projectID)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO project_boundaries (project_id, name, geom, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT (project_id) DO UPDATE SET
			name = excluded.name,
			geom = excluded.geom,
			updated_at = datetime('now')`,
		projectID, boundary.Name, string(geomJSON))
	return eris.Wrapf(err, "sqlite: save boundary %s", projectID)
}

// SaveSnapshot implements Store.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analysis_snapshots (id, project_id, generated_at, overall_score, status, raw)
		VALUES (?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.ProjectID, snap.GeneratedAt, snap.OverallScore, snap.Status, string(snap.Raw))
	return eris.Wrapf(err, "sqlite: save snapshot %s", snap.ProjectID)
}

// LatestSnapshot implements Store.
func (s *SQLiteStore) LatestSnapshot(ctx context.Context, projectID string) (*Snapshot, error) {
	var snap Snapshot
	var raw string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, generated_at, overall_score, status, raw
		FROM analysis_snapshots
		WHERE project_id = ?
		ORDER BY generated_at DESC
		LIMIT 1`, projectID).
		Scan(&snap.ID, &snap.ProjectID, &snap.GeneratedAt, &snap.OverallScore, &snap.Status, &raw)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "sqlite: latest snapshot %s", projectID)
	}
	snap.Raw = json.RawMessage(raw)
	return &snap, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullableText(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
