package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/hkmu/coursehub/internal/app/models"
	"github.com/hkmu/coursehub/internal/app/models/dto"
	"github.com/hkmu/coursehub/internal/app/repositories"
	"github.com/hkmu/coursehub/internal/pkg/apperrors"
	"github.com/hkmu/coursehub/internal/pkg/logger"
)

// MaterialService handles study-material business rules: the upload
// allow-list and size ceiling, ownership on delete, and the
// count-on-download semantics.
type MaterialService struct {
	materials *repositories.MaterialRepository
	courses   *repositories.CourseRepository
}

// NewMaterialService creates a new MaterialService.
func NewMaterialService(repos *repositories.Repositories) *MaterialService {
	return &MaterialService{
		materials: repos.Materials,
		courses:   repos.Courses,
	}
}

// Upload validates and stores a material. Size and MIME type are checked
// before anything touches the database, so a rejected upload leaves no
// partial record.
func (s *MaterialService) Upload(ctx context.Context, user *models.User, req *dto.UploadMaterialRequest, file *multipart.FileHeader) (*models.Material, error) {
	if file == nil {
		return nil, apperrors.ErrFileMissing
	}
	if file.Size > models.MaxFileSize {
		return nil, apperrors.ErrFileTooLarge
	}

	mimeType := file.Header.Get("Content-Type")
	if !models.IsAllowedFileType(mimeType) {
		return nil, apperrors.ErrFileTypeInvalid
	}
	if !models.IsValidMaterialType(req.Type) {
		return nil, apperrors.NewValidationError("Invalid material type")
	}
	if !models.IsValidSemester(req.Semester) {
		return nil, apperrors.NewValidationError("Invalid semester")
	}

	courseCode := strings.ToUpper(strings.TrimSpace(req.CourseCode))
	course, err := s.courses.GetByCode(ctx, courseCode)
	if err != nil {
		return nil, fmt.Errorf("error checking course: %w", err)
	}
	if course == nil {
		return nil, apperrors.NewNotFoundError(apperrors.ErrCourseNotFound,
			"Course "+courseCode+" does not exist")
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, models.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("error reading uploaded file: %w", err)
	}
	if int64(len(data)) > models.MaxFileSize {
		return nil, apperrors.ErrFileTooLarge
	}

	material := &models.Material{
		CourseCode:   courseCode,
		UploadedBy:   user.ID,
		UploaderName: user.Name,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Type:         req.Type,
		Semester:     req.Semester,
		Year:         req.Year,
		FileType:     mimeType,
		FileName:     file.Filename,
		FileSize:     int64(len(data)),
		FileData:     data,
	}

	id, err := s.materials.Create(ctx, material)
	if err != nil {
		return nil, fmt.Errorf("error uploading material: %w", err)
	}

	logger.Info().
		Str("courseCode", courseCode).
		Str("title", material.Title).
		Int64("size", material.FileSize).
		Msg("Material uploaded")
	return s.GetByID(ctx, id)
}

// GetByID fetches material metadata without the file bytes.
func (s *MaterialService) GetByID(ctx context.Context, id int64) (*models.Material, error) {
	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error finding material: %w", err)
	}
	if material == nil {
		return nil, apperrors.ErrMaterialNotFound
	}
	return material, nil
}

// List returns material metadata matching the filter.
func (s *MaterialService) List(ctx context.Context, filter dto.MaterialFilter, page, pageSize int) ([]models.Material, int64, error) {
	if filter.CourseCode != "" {
		filter.CourseCode = strings.ToUpper(strings.TrimSpace(filter.CourseCode))
	}
	return s.materials.List(ctx, filter, page, pageSize)
}

// Download returns the material with its file bytes and counts the
// download. Only this path increments the counter; metadata lookups do not.
func (s *MaterialService) Download(ctx context.Context, id int64) (*models.Material, error) {
	material, err := s.materials.FetchForDownload(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error fetching material: %w", err)
	}
	if material == nil {
		return nil, apperrors.ErrMaterialNotFound
	}
	return material, nil
}

// Delete removes a material owned by actor, or any material when actor is
// admin.
func (s *MaterialService) Delete(ctx context.Context, actor *models.User, id int64) error {
	material, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if material.UploadedBy != actor.ID && !actor.IsAdmin {
		return apperrors.NewForbiddenError("You can only delete your own materials")
	}

	deleted, err := s.materials.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting material: %w", err)
	}
	if !deleted {
		return apperrors.ErrMaterialNotFound
	}

	logger.Info().Int64("materialId", id).Msg("Material deleted")
	return nil
}

// ByCourse returns all materials of one course.
func (s *MaterialService) ByCourse(ctx context.Context, courseCode string) ([]models.Material, error) {
	filter := dto.MaterialFilter{CourseCode: courseCode}
	materials, _, err := s.List(ctx, filter, 1, 100)
	return materials, err
}
