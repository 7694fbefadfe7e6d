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

// MaterialRepository handles database operations for study materials. File
// bytes are stored inline on the row; every query except FetchForDownload
// leaves file_data out of the select list.
type MaterialRepository struct {
	db *pgxpool.Pool
}

// NewMaterialRepository creates a new MaterialRepository.
func NewMaterialRepository(db *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func scanMaterialMeta(row pgx.Row) (*models.Material, error) {
	var m models.Material
	err := row.Scan(
		&m.ID, &m.CourseCode, &m.UploadedBy, &m.UploaderName,
		&m.Title, &m.Description, &m.Type, &m.Semester, &m.Year,
		&m.FileType, &m.FileName, &m.FileSize,
		&m.DownloadCount, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List retrieves material metadata matching the filter with pagination.
func (r *MaterialRepository) List(ctx context.Context, filter dto.MaterialFilter, page, pageSize int) ([]models.Material, int64, error) {
	query := buildMaterialListQuery(filter)

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

	var materials []models.Material
	var total int64
	for rows.Next() {
		var m models.Material
		err := rows.Scan(
			&m.ID, &m.CourseCode, &m.UploadedBy, &m.UploaderName,
			&m.Title, &m.Description, &m.Type, &m.Semester, &m.Year,
			&m.FileType, &m.FileName, &m.FileSize,
			&m.DownloadCount, &m.CreatedAt, &m.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		materials = append(materials, m)
	}
	return materials, total, rows.Err()
}

// GetByID retrieves material metadata (no file bytes). Returns (nil, nil)
// when absent. A metadata lookup does not count as a download.
func (r *MaterialRepository) GetByID(ctx context.Context, id int64) (*models.Material, error) {
	query := squirrel.Select(materialListColumns...).
		From("materials").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	material, err := scanMaterialMeta(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return material, nil
}

// Create inserts a new material with its file bytes.
func (r *MaterialRepository) Create(ctx context.Context, material *models.Material) (int64, error) {
	query := squirrel.Insert("materials").
		Columns("course_code", "uploaded_by", "uploader_name",
			"title", "description", "type", "semester", "year",
			"file_type", "file_name", "file_size", "file_data").
		Values(material.CourseCode, material.UploadedBy, material.UploaderName,
			material.Title, material.Description, material.Type, material.Semester, material.Year,
			material.FileType, material.FileName, material.FileSize, material.FileData).
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

// FetchForDownload returns the material including its file bytes and bumps
// the download counter in the same atomic statement. Concurrent downloads
// each count exactly once. Returns (nil, nil) when absent.
func (r *MaterialRepository) FetchForDownload(ctx context.Context, id int64) (*models.Material, error) {
	sql := `UPDATE materials SET download_count = download_count + 1 WHERE id = $1
		RETURNING id, course_code, uploaded_by, uploader_name,
			title, description, type, semester, year,
			file_type, file_name, file_size, file_data,
			download_count, created_at, updated_at`

	var m models.Material
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&m.ID, &m.CourseCode, &m.UploadedBy, &m.UploaderName,
		&m.Title, &m.Description, &m.Type, &m.Semester, &m.Year,
		&m.FileType, &m.FileName, &m.FileSize, &m.FileData,
		&m.DownloadCount, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	return &m, nil
}

// Delete removes a material.
func (r *MaterialRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// DeleteByCourse removes every material of a course within the caller's
// transaction. Part of the course-deletion cascade.
func (r *MaterialRepository) DeleteByCourse(ctx context.Context, q Querier, courseCode string) (int64, error) {
	result, err := q.Exec(ctx, `DELETE FROM materials WHERE course_code = $1`, courseCode)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}
	return result.RowsAffected(), nil
}
