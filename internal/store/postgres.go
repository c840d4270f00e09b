package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/wkb"
	"go.uber.org/zap"

	"github.com/arden-renewables/sitescope/internal/geometry"
)

// Pool is the subset of pgxpool.Pool the store needs. pgxmock satisfies
// it, which keeps the Postgres store testable without a database.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// PostgresStore implements Store against Postgres with PostGIS.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests with pgxmock.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS constraint_features (
	id         BIGSERIAL PRIMARY KEY,
	type       TEXT NOT NULL,
	name       TEXT NOT NULL DEFAULT '',
	geom       geometry(Geometry, 4326) NOT NULL,
	properties JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_constraint_features_type ON constraint_features (type);
CREATE INDEX IF NOT EXISTS idx_constraint_features_geom ON constraint_features USING gist (geom);

CREATE TABLE IF NOT EXISTS project_boundaries (
	project_id TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	geom       geometry(Geometry, 4326) NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS analysis_snapshots (
	id            TEXT PRIMARY KEY,
	project_id    TEXT NOT NULL,
	generated_at  TIMESTAMPTZ NOT NULL,
	overall_score DOUBLE PRECISION NOT NULL,
	status        TEXT NOT NULL,
	raw           JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analysis_snapshots_project ON analysis_snapshots (project_id, generated_at DESC);
`

// Migrate applies the Postgres schema. PostGIS must already be
// installed in the target database.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

// InsertFeature implements Store.
func (s *PostgresStore) InsertFeature(ctx context.Context, f ConstraintFeature) error {
	if err := f.Validate(); err != nil {
		return err
	}
	wkt, err := geometry.WKT(f.Geometry)
	if err != nil {
		return eris.Wrapf(err, "postgres: encode feature %q", f.Name)
	}
	var props []byte
	if f.Properties != nil {
		props, err = json.Marshal(f.Properties)
		if err != nil {
			return eris.Wrapf(err, "postgres: encode feature properties %q", f.Name)
		}
	}
	sql := `INSERT INTO constraint_features (type, name, geom, properties)
		VALUES ($1, $2, ST_GeomFromText($3, 4326), $4)`
	if _, err := s.pool.Exec(ctx, sql, f.Type, f.Name, wkt, props); err != nil {
		return eris.Wrapf(err, "postgres: insert feature %q", f.Name)
	}
	return nil
}

// FetchFeaturesByType implements Store. Rows whose geometry fails to
// decode are skipped and logged — one bad record must not abort the
// evaluation batch that depends on this fetch.
func (s *PostgresStore) FetchFeaturesByType(ctx context.Context, constraintTypeID string) ([]ConstraintFeature, error) {
	sql := `SELECT name, ST_AsBinary(geom) FROM constraint_features WHERE type = $1 ORDER BY id`
	rows, err := s.pool.Query(ctx, sql, constraintTypeID)
	if err != nil {
		return nil, eris.Wrapf(ErrDatasetFetch, "postgres: query features for %s: %v", constraintTypeID, err)
	}
	defer rows.Close()

	features := make([]ConstraintFeature, 0)
	var skipped int
	for rows.Next() {
		var name string
		var raw []byte
		if err := rows.Scan(&name, &raw); err != nil {
			return nil, eris.Wrap(err, "postgres: scan feature row")
		}
		g, err := wkb.Unmarshal(raw)
		if err != nil {
			skipped++
			continue
		}
		features = append(features, ConstraintFeature{Type: constraintTypeID, Name: name, Geometry: g})
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrapf(ErrDatasetFetch, "postgres: iterate feature rows: %v", err)
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
func (s *PostgresStore) FetchProjectBoundary(ctx context.Context, projectID string) (*geometry.Feature, error) {
	sql := `SELECT name, ST_AsBinary(geom) FROM project_boundaries WHERE project_id = $1`
	var name string
	var raw []byte
	err := s.pool.QueryRow(ctx, sql, projectID).Scan(&name, &raw)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: fetch boundary %s", projectID)
	}

	g, err := wkb.Unmarshal(raw)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: decode boundary %s", projectID)
	}
	return &geometry.Feature{Geometry: g, Name: name}, nil
}

// SaveBoundary implements Store. The geometry travels as WKT so the
// statement works on any spatial-SQL dialect.
func (s *PostgresStore) SaveBoundary(ctx context.Context, projectID string, boundary geometry.Feature) error {
	wkt, err := geometry.WKT(boundary.Geometry)
	if err != nil {
		return eris.Wrapf(err, "postgres: encode boundary %s", projectID)
	}

	sql := `
		INSERT INTO project_boundaries (project_id, name, geom, updated_at)
		VALUES ($1, $2, ST_GeomFromText($3, 4326), now())
		ON CONFLICT (project_id) DO UPDATE SET
			name = EXCLUDED.name,
			geom = EXCLUDED.geom,
			updated_at = now()`
	if _, err := s.pool.Exec(ctx, sql, projectID, boundary.Name, wkt); err != nil {
		return eris.Wrapf(err, "postgres: save boundary %s", projectID)
	}
	return nil
}

// SaveSnapshot implements Store.
func (s *PostgresStore) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	sql := `
		INSERT INTO analysis_snapshots (id, project_id, generated_at, overall_score, status, raw)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.pool.Exec(ctx, sql,
		snap.ID, snap.ProjectID, snap.GeneratedAt, snap.OverallScore, snap.Status, snap.Raw)
	if err != nil {
		return eris.Wrapf(err, "postgres: save snapshot %s", snap.ProjectID)
	}
	return nil
}

// LatestSnapshot implements Store.
func (s *PostgresStore) LatestSnapshot(ctx context.Context, projectID string) (*Snapshot, error) {
	sql := `
		SELECT id, project_id, generated_at, overall_score, status, raw
		FROM analysis_snapshots
		WHERE project_id = $1
		ORDER BY generated_at DESC
		LIMIT 1`
	var snap Snapshot
	err := s.pool.QueryRow(ctx, sql, projectID).Scan(
		&snap.ID, &snap.ProjectID, &snap.GeneratedAt, &snap.OverallScore, &snap.Status, &snap.Raw)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: latest snapshot %s", projectID)
	}
	return &snap, nil
}

// Close implements Store.
func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}
