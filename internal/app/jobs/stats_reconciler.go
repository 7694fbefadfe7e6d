package jobs

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/hkmu/coursehub/internal/app/repositories"
	"github.com/hkmu/coursehub/internal/app/services"
	"github.com/hkmu/coursehub/internal/db"
	"github.com/hkmu/coursehub/internal/pkg/logger"
)

// reconcileSchedule runs nightly, outside peak hours.
const reconcileSchedule = "0 4 * * *"

// StatsReconciler periodically recomputes every course's aggregates from its
// reviews. Review mutations already keep the aggregates current inside their
// own transactions; the sweep exists to repair any drift, for example after
// a manual data fix.
type StatsReconciler struct {
	cron    *cron.Cron
	pool    *pgxpool.Pool
	courses *repositories.CourseRepository
	stats   *services.StatsService
}

// NewStatsReconciler creates the reconciler without starting it.
func NewStatsReconciler(pool *pgxpool.Pool, repos *repositories.Repositories, stats *services.StatsService) *StatsReconciler {
	return &StatsReconciler{
		cron:    cron.New(),
		pool:    pool,
		courses: repos.Courses,
		stats:   stats,
	}
}

// Start registers the nightly sweep and starts the scheduler.
func (r *StatsReconciler) Start() error {
	_, err := r.cron.AddFunc(reconcileSchedule, r.runSweep)
	if err != nil {
		return err
	}
	r.cron.Start()
	logger.Info().Str("schedule", reconcileSchedule).Msg("Stats reconciliation scheduled")
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (r *StatsReconciler) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *StatsReconciler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := r.ReconcileAll(ctx); err != nil {
		logger.Error().Err(err).Msg("Stats reconciliation sweep failed")
	}
}

// ReconcileAll recomputes aggregates for every course, one short transaction
// per course so the sweep never holds more than one row lock at a time.
func (r *StatsReconciler) ReconcileAll(ctx context.Context) error {
	codes, err := r.courses.AllCodes(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	var failed int
	for _, code := range codes {
		err := db.WithTransaction(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
			return r.stats.Recompute(ctx, tx, code)
		})
		if err != nil {
			failed++
			logger.Error().Err(err).Str("courseCode", code).Msg("Stats recompute failed")
		}
	}

	logger.Info().
		Int("courses", len(codes)).
		Int("failed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("Stats reconciliation sweep finished")
	return nil
}
