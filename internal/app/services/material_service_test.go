package services

import (
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hkmu/coursehub/internal/app/models"
	"github.com/hkmu/coursehub/internal/app/models/dto"
	"github.com/hkmu/coursehub/internal/app/repositories"
	"github.com/hkmu/coursehub/internal/pkg/apperrors"
)

func uploadHeader(filename, mimeType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: filename,
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{mimeType}},
	}
}

func validUploadRequest() *dto.UploadMaterialRequest {
	return &dto.UploadMaterialRequest{
		CourseCode: "COMP3500SEF",
		Title:      "Midterm notes",
		Type:       "Notes",
		Semester:   "Autumn",
		Year:       2025,
	}
}

// The rejection checks run before any database access, so a service with
// empty repositories is enough to exercise them.
func rejectionOnlyService() *MaterialService {
	return NewMaterialService(&repositories.Repositories{})
}

func TestUploadRejectsMissingFile(t *testing.T) {
	svc := rejectionOnlyService()

	_, err := svc.Upload(context.Background(), &models.User{ID: 1}, validUploadRequest(), nil)
	assert.ErrorIs(t, err, apperrors.ErrFileMissing)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := rejectionOnlyService()
	file := uploadHeader("huge.pdf", "application/pdf", models.MaxFileSize+1)

	_, err := svc.Upload(context.Background(), &models.User{ID: 1}, validUploadRequest(), file)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
}

func TestUploadRejectsDisallowedMimeTypes(t *testing.T) {
	svc := rejectionOnlyService()

	for _, mimeType := range []string{"image/png", "application/zip", "text/html", ""} {
		file := uploadHeader("file.bin", mimeType, 1024)
		_, err := svc.Upload(context.Background(), &models.User{ID: 1}, validUploadRequest(), file)
		assert.ErrorIs(t, err, apperrors.ErrFileTypeInvalid, "mime type %q", mimeType)
	}
}

func TestUploadRejectsBadMetadata(t *testing.T) {
	svc := rejectionOnlyService()
	file := uploadHeader("notes.pdf", "application/pdf", 1024)

	t.Run("unknown material type", func(t *testing.T) {
		req := validUploadRequest()
		req.Type = "Cheatsheet"
		_, err := svc.Upload(context.Background(), &models.User{ID: 1}, req, file)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unknown semester", func(t *testing.T) {
		req := validUploadRequest()
		req.Semester = "Winter"
		_, err := svc.Upload(context.Background(), &models.User{ID: 1}, req, file)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}
