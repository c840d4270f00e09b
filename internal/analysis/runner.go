package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/arden-renewables/sitescope/internal/catalog"
	"github.com/arden-renewables/sitescope/internal/evaluator"
	"github.com/arden-renewables/sitescope/internal/geometry"
	"github.com/arden-renewables/sitescope/internal/resilience"
	"github.com/arden-renewables/sitescope/internal/store"
)

// RunnerConfig tunes how a full analysis run hits the dataset store.
type RunnerConfig struct {
	// FetchTimeout bounds each per-constraint dataset fetch. A fetch
	// that exceeds it degrades that constraint to "no data" instead of
	// failing the run.
	FetchTimeout time.Duration
	// MaxConcurrent caps constraint evaluations in flight at once.
	MaxConcurrent int
	// FetchRatePerSec throttles dataset fetches. Zero means unlimited.
	FetchRatePerSec float64
}

// DefaultRunnerConfig returns the tuning used by the CLI and server.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		FetchTimeout:  10 * time.Second,
		MaxConcurrent: 8,
	}
}

// Runner executes complete analysis runs: boundary lookup, one
// evaluation per catalog constraint, aggregation, snapshot persistence.
type Runner struct {
	store   store.Store
	catalog *catalog.Catalog
	cfg     RunnerConfig
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewRunner wires a Runner to a dataset store and constraint catalog.
func NewRunner(st store.Store, cat *catalog.Catalog, cfg RunnerConfig) *Runner {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultRunnerConfig().FetchTimeout
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultRunnerConfig().MaxConcurrent
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.FetchRatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.FetchRatePerSec), cfg.MaxConcurrent)
	}

	retry := resilience.DefaultRetryConfig()
	retry.InitialBackoff = 200 * time.Millisecond
	retry.OnRetry = resilience.RetryLogger("store", "fetch_features")

	return &Runner{store: st, catalog: cat, cfg: cfg, limiter: limiter, retry: retry}
}

// Run performs a full analysis of the project's stored boundary. Every
// constraint in the catalog is evaluated; fetch failures degrade single
// constraints rather than aborting the run. Cancellation discards the
// run: nothing is persisted and ctx.Err() comes back.
func (r *Runner) Run(ctx context.Context, projectID string) (*Result, error) {
	boundary, err := r.store.FetchProjectBoundary(ctx, projectID)
	if err != nil {
		return nil, eris.Wrapf(err, "analysis: load boundary for %s", projectID)
	}
	if boundary == nil {
		return nil, eris.Wrapf(store.ErrNoBoundary, "analysis: project %s", projectID)
	}

	entries := r.catalog.All()
	results := make([]evaluator.Result, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.MaxConcurrent)
	for i, cfg := range entries {
		g.Go(func() error {
			if err := r.limiter.Wait(gctx); err != nil {
				return err
			}
			results[i] = r.evaluateOne(gctx, cfg, *boundary)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrapf(err, "analysis: run for %s", projectID)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := Aggregate(results, r.catalog)
	out.RunID = uuid.NewString()
	out.ProjectID = projectID
	out.GeneratedAt = time.Now().UTC()

	if err := r.snapshot(ctx, &out); err != nil {
		// The analysis itself succeeded; persistence is best effort.
		zap.L().Error("analysis: snapshot not saved",
			zap.String("project_id", projectID),
			zap.Error(err),
		)
	}

	zap.L().Info("analysis: run complete",
		zap.String("project_id", projectID),
		zap.String("run_id", out.RunID),
		zap.Float64("overall_score", out.OverallScore),
		zap.String("overall_status", string(out.OverallStatus)),
		zap.Int("constraints", out.Summary.TotalAnalyzed),
	)
	return &out, nil
}

// evaluateOne fetches this constraint's dataset features and evaluates
// them. A timed-out or failed fetch does not fail the run: the
// constraint scores as if no data existed, flagged Degraded so the
// report says so.
func (r *Runner) evaluateOne(ctx context.Context, cfg catalog.ConstraintConfig, boundary geometry.Feature) evaluator.Result {
	fctx, cancel := context.WithTimeout(ctx, r.cfg.FetchTimeout)
	defer cancel()

	features, err := resilience.DoVal(fctx, r.retry, func(ctx context.Context) ([]store.ConstraintFeature, error) {
		return r.store.FetchFeaturesByType(ctx, cfg.ID)
	})
	if err != nil {
		res := evaluator.Evaluate(cfg, boundary, nil)
		res.Degraded = true
		res.Description = fmt.Sprintf("%s data could not be retrieved; scored as if absent", cfg.Name)
		if errors.Is(err, context.DeadlineExceeded) {
			zap.L().Warn("analysis: dataset fetch timed out",
				zap.String("constraint", cfg.ID),
				zap.Duration("timeout", r.cfg.FetchTimeout),
			)
		} else {
			zap.L().Warn("analysis: dataset fetch failed",
				zap.String("constraint", cfg.ID),
				zap.Error(err),
			)
		}
		return res
	}

	return evaluator.Evaluate(cfg, boundary, features)
}

func (r *Runner) snapshot(ctx context.Context, res *Result) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return eris.Wrap(err, "analysis: encode snapshot")
	}
	return r.store.SaveSnapshot(ctx, store.Snapshot{
		ID:           res.RunID,
		ProjectID:    res.ProjectID,
		GeneratedAt:  res.GeneratedAt,
		OverallScore: res.OverallScore,
		Status:       string(res.OverallStatus),
		Raw:          raw,
	})
}
