package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx. Repository methods
// that must participate in a caller-owned transaction (review mutations and
// the stats recomputation they trigger) take a Querier instead of using the
// pool directly.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories bundles all repository instances for dependency wiring.
type Repositories struct {
	Courses   *CourseRepository
	Reviews   *ReviewRepository
	Materials *MaterialRepository
	Users     *UserRepository
}

// NewRepositories creates all repositories sharing one pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Courses:   NewCourseRepository(db),
		Reviews:   NewReviewRepository(db),
		Materials: NewMaterialRepository(db),
		Users:     NewUserRepository(db),
	}
}
