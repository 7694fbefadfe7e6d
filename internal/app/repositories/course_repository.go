package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hkmu/coursehub/internal/app/models"
	"github.com/hkmu/coursehub/internal/app/models/dto"
	"github.com/hkmu/coursehub/internal/pkg/helpers"
)

// CourseRepository handles database operations for courses.
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID, &c.Code, &c.Name, &c.Program, &c.Credits, &c.Description,
		&c.Prerequisites, &c.Instructors,
		&c.AverageRating, &c.ReviewCount, &c.AverageDifficulty, &c.AverageWorkload,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List retrieves courses matching the filter, with pagination. The second
// return value is the total match count before paging.
func (r *CourseRepository) List(ctx context.Context, filter dto.CourseFilter, page, pageSize int) ([]models.Course, int64, error) {
	query := buildCourseListQuery(filter)

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	query = query.Column("COUNT(*) OVER()").
		Limit(uint64(limit)).Offset(offset)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	var total int64
	for rows.Next() {
		var c models.Course
		err := rows.Scan(
			&c.ID, &c.Code, &c.Name, &c.Program, &c.Credits, &c.Description,
			&c.Prerequisites, &c.Instructors,
			&c.AverageRating, &c.ReviewCount, &c.AverageDifficulty, &c.AverageWorkload,
			&c.CreatedAt, &c.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		courses = append(courses, c)
	}

	return courses, total, rows.Err()
}

// GetByCode retrieves a course by its code. Returns (nil, nil) when absent.
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	query := squirrel.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"code": code}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return course, nil
}

// Create inserts a new course. Aggregates start at zero.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	query := squirrel.Insert("courses").
		Columns("code", "name", "program", "credits", "description", "prerequisites", "instructors").
		Values(course.Code, course.Name, course.Program, course.Credits, course.Description,
			course.Prerequisites, course.Instructors).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Update rewrites the writable fields of a course. The aggregate fields are
// untouched; only UpdateStats may write those.
func (r *CourseRepository) Update(ctx context.Context, code string, req *dto.UpdateCourseRequest) (bool, error) {
	query := squirrel.Update("courses").
		Set("name", req.CourseName).
		Set("program", req.Program).
		Set("credits", req.Credits).
		Set("description", req.Description).
		Set("prerequisites", req.Prerequisites).
		Set("instructors", req.Instructors).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"code": code}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// Delete removes a course row within the caller's transaction. Review and
// material cleanup happens in the same transaction (see CourseService).
func (r *CourseRepository) Delete(ctx context.Context, q Querier, code string) (bool, error) {
	query := squirrel.Delete("courses").
		Where(squirrel.Eq{"code": code}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	result, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// TopRated returns the highest rated courses that have at least one review.
func (r *CourseRepository) TopRated(ctx context.Context, limit int) ([]models.Course, error) {
	query := squirrel.Select(courseColumns...).
		From("courses").
		Where(squirrel.Gt{"review_count": 0}).
		OrderBy("average_rating DESC, review_count DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		err := rows.Scan(
			&c.ID, &c.Code, &c.Name, &c.Program, &c.Credits, &c.Description,
			&c.Prerequisites, &c.Instructors,
			&c.AverageRating, &c.ReviewCount, &c.AverageDifficulty, &c.AverageWorkload,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// LockForStats takes a row lock on the course so concurrent review mutations
// for the same course serialize their recomputation. Returns false when the
// course does not exist.
func (r *CourseRepository) LockForStats(ctx context.Context, q Querier, code string) (bool, error) {
	var id int64
	err := q.QueryRow(ctx, `SELECT id FROM courses WHERE code = $1 FOR UPDATE`, code).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("error locking course row: %w", err)
	}
	return true, nil
}

// UpdateStats persists the derived aggregate fields. Must run inside the
// transaction that holds the LockForStats lock.
func (r *CourseRepository) UpdateStats(ctx context.Context, q Querier, code string, stats models.CourseStats) error {
	query := squirrel.Update("courses").
		Set("average_rating", stats.AverageRating).
		Set("average_difficulty", stats.AverageDifficulty).
		Set("average_workload", stats.AverageWorkload).
		Set("review_count", stats.ReviewCount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"code": code}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	return nil
}

// AllCodes returns every course code. Used by the nightly stats
// reconciliation sweep.
func (r *CourseRepository) AllCodes(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT code FROM courses ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}
