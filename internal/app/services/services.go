package services

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hkmu/coursehub/internal/app/repositories"
	"github.com/hkmu/coursehub/internal/pkg/oauth"
)

// Services bundles all service instances for dependency injection.
type Services struct {
	Auth     *AuthService
	Course   *CourseService
	Review   *ReviewService
	Material *MaterialService
	Stats    *StatsService
}

// NewServices wires services onto the shared pool and repositories.
func NewServices(pool *pgxpool.Pool, repos *repositories.Repositories, provider *oauth.GoogleProvider) *Services {
	stats := NewStatsService(repos.Courses, repos.Reviews)
	return &Services{
		Auth:     NewAuthService(provider, repos),
		Course:   NewCourseService(pool, repos),
		Review:   NewReviewService(pool, repos, stats),
		Material: NewMaterialService(repos),
		Stats:    stats,
	}
}
