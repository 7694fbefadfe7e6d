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

// ReviewRepository handles database operations for reviews. Mutating methods
// take a Querier so the review write and the course stats recomputation can
// share one transaction.
type ReviewRepository struct {
	db *pgxpool.Pool
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func scanReview(row pgx.Row) (*models.Review, error) {
	var rev models.Review
	err := row.Scan(
		&rev.ID, &rev.CourseCode, &rev.UserID, &rev.UserName, &rev.UserPhoto,
		&rev.Semester, &rev.Year, &rev.Instructor,
		&rev.Rating, &rev.Difficulty, &rev.Workload, &rev.Grade,
		&rev.ReviewText, &rev.Pros, &rev.Cons, &rev.Tips,
		&rev.HelpfulCount, &rev.CreatedAt, &rev.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

// List retrieves reviews matching the filter with pagination; the second
// return value is the total match count.
func (r *ReviewRepository) List(ctx context.Context, filter dto.ReviewFilter, page, pageSize int) ([]models.Review, int64, error) {
	query := buildReviewListQuery(filter)

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

	var reviews []models.Review
	var total int64
	for rows.Next() {
		var rev models.Review
		err := rows.Scan(
			&rev.ID, &rev.CourseCode, &rev.UserID, &rev.UserName, &rev.UserPhoto,
			&rev.Semester, &rev.Year, &rev.Instructor,
			&rev.Rating, &rev.Difficulty, &rev.Workload, &rev.Grade,
			&rev.ReviewText, &rev.Pros, &rev.Cons, &rev.Tips,
			&rev.HelpfulCount, &rev.CreatedAt, &rev.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		reviews = append(reviews, rev)
	}
	return reviews, total, rows.Err()
}

// GetByID retrieves a review by ID. Returns (nil, nil) when absent.
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	query := squirrel.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	review, err := scanReview(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return review, nil
}

// Create inserts a new review within the caller's transaction.
func (r *ReviewRepository) Create(ctx context.Context, q Querier, review *models.Review) (int64, error) {
	query := squirrel.Insert("reviews").
		Columns("course_code", "user_id", "user_name", "user_photo",
			"semester", "year", "instructor",
			"rating", "difficulty", "workload", "grade",
			"review_text", "pros", "cons", "tips").
		Values(review.CourseCode, review.UserID, review.UserName, review.UserPhoto,
			review.Semester, review.Year, review.Instructor,
			review.Rating, review.Difficulty, review.Workload, review.Grade,
			review.ReviewText, review.Pros, review.Cons, review.Tips).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Update rewrites the editable fields of a review within the caller's
// transaction.
func (r *ReviewRepository) Update(ctx context.Context, q Querier, id int64, req *dto.UpdateReviewRequest) (bool, error) {
	query := squirrel.Update("reviews").
		Set("semester", req.Semester).
		Set("year", req.Year).
		Set("instructor", req.Instructor).
		Set("rating", req.Rating).
		Set("difficulty", req.Difficulty).
		Set("workload", req.Workload).
		Set("grade", req.Grade).
		Set("review_text", req.ReviewText).
		Set("pros", req.Pros).
		Set("cons", req.Cons).
		Set("tips", req.Tips).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
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

// Delete removes a review within the caller's transaction.
func (r *ReviewRepository) Delete(ctx context.Context, q Querier, id int64) (bool, error) {
	result, err := q.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// DeleteByCourse removes every review of a course within the caller's
// transaction. Used by the course-deletion cascade.
func (r *ReviewRepository) DeleteByCourse(ctx context.Context, q Querier, courseCode string) (int64, error) {
	result, err := q.Exec(ctx, `DELETE FROM reviews WHERE course_code = $1`, courseCode)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return result.RowsAffected(), nil
}

// RatingsByCourse reads the three rating fields of every review for a
// course. Runs on the caller's Querier so the stats recomputation sees the
// transaction's own uncommitted writes.
func (r *ReviewRepository) RatingsByCourse(ctx context.Context, q Querier, courseCode string) ([]models.ReviewRatings, error) {
	rows, err := q.Query(ctx,
		`SELECT rating, difficulty, workload FROM reviews WHERE course_code = $1`, courseCode)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var ratings []models.ReviewRatings
	for rows.Next() {
		var rr models.ReviewRatings
		if err := rows.Scan(&rr.Rating, &rr.Difficulty, &rr.Workload); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		ratings = append(ratings, rr)
	}
	return ratings, rows.Err()
}

// IncrementHelpful bumps the helpful counter with a single atomic UPDATE, so
// concurrent marks never lose an increment. Returns the review with the new
// count, or (nil, nil) when absent.
func (r *ReviewRepository) IncrementHelpful(ctx context.Context, id int64) (*models.Review, error) {
	sql := `UPDATE reviews SET helpful_count = helpful_count + 1 WHERE id = $1
		RETURNING ` + joinColumns(reviewColumns)

	review, err := scanReview(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return review, nil
}

// Recent returns the newest reviews across all courses.
func (r *ReviewRepository) Recent(ctx context.Context, limit int) ([]models.Review, error) {
	query := squirrel.Select(reviewColumns...).
		From("reviews").
		OrderBy("created_at DESC").
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

	var reviews []models.Review
	for rows.Next() {
		var rev models.Review
		err := rows.Scan(
			&rev.ID, &rev.CourseCode, &rev.UserID, &rev.UserName, &rev.UserPhoto,
			&rev.Semester, &rev.Year, &rev.Instructor,
			&rev.Rating, &rev.Difficulty, &rev.Workload, &rev.Grade,
			&rev.ReviewText, &rev.Pros, &rev.Cons, &rev.Tips,
			&rev.HelpfulCount, &rev.CreatedAt, &rev.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

// DifficultyDistribution counts reviews per difficulty value 1..5.
func (r *ReviewRepository) DifficultyDistribution(ctx context.Context) (map[int]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT difficulty, COUNT(*) FROM reviews GROUP BY difficulty ORDER BY difficulty`)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	dist := make(map[int]int64)
	for rows.Next() {
		var difficulty int
		var count int64
		if err := rows.Scan(&difficulty, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		dist[difficulty] = count
	}
	return dist, rows.Err()
}

func joinColumns(cols []string) string {
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}
