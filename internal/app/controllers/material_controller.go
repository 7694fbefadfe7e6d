package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hkmu/coursehub/internal/app/models/dto"
	"github.com/hkmu/coursehub/internal/app/services"
	"github.com/hkmu/coursehub/internal/middleware"
	"github.com/hkmu/coursehub/internal/pkg/apperrors"
	"github.com/hkmu/coursehub/internal/pkg/helpers"
)

// MaterialController handles the JSON API for study materials.
type MaterialController struct {
	materialService *services.MaterialService
}

// NewMaterialController creates a new MaterialController.
func NewMaterialController(materialService *services.MaterialService) *MaterialController {
	return &MaterialController{materialService: materialService}
}

func parseMaterialFilter(c *gin.Context) dto.MaterialFilter {
	filter := dto.MaterialFilter{
		CourseCode: c.Query("courseCode"),
		Type:       c.Query("type"),
		Semester:   c.Query("semester"),
	}
	if raw := c.Query("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.Year = &v
		}
	}
	if raw := c.Query("uploadedBy"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.UploadedBy = &v
		}
	}
	return filter
}

func materialIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		middleware.HandleAPIError(c, apperrors.NewValidationError("Invalid material id"))
		return 0, false
	}
	return id, true
}

// ListMaterials returns a filtered, paginated page of material metadata.
// GET /api/v1/materials
func (ctrl *MaterialController) ListMaterials(c *gin.Context) {
	page, size := helpers.ParsePaginationParams(c)
	filter := parseMaterialFilter(c)

	materials, total, err := ctrl.materialService.List(c.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	pagination := helpers.NewPaginationInfo(total, page, size)
	c.JSON(http.StatusOK, dto.NewPagedResponse(materials, len(materials), pagination))
}

// GetMaterial returns material metadata without counting a download.
// GET /api/v1/materials/:id
func (ctrl *MaterialController) GetMaterial(c *gin.Context) {
	id, ok := materialIDParam(c)
	if !ok {
		return
	}

	material, err := ctrl.materialService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(material))
}

// UploadMaterial stores a multipart file upload as the authenticated user.
// POST /api/v1/materials
func (ctrl *MaterialController) UploadMaterial(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.UploadMaterialRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(c, apperrors.ErrFileMissing)
		return
	}

	material, err := ctrl.materialService.Upload(c.Request.Context(), user, &req, file)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(material))
}

// DownloadMaterial streams the stored file and counts the download.
// GET /api/v1/materials/:id/download
func (ctrl *MaterialController) DownloadMaterial(c *gin.Context) {
	id, ok := materialIDParam(c)
	if !ok {
		return
	}

	material, err := ctrl.materialService.Download(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", material.FileName))
	c.Data(http.StatusOK, material.FileType, material.FileData)
}

// DeleteMaterial removes a material owned by the caller, or any material for
// admins.
// DELETE /api/v1/materials/:id
func (ctrl *MaterialController) DeleteMaterial(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	id, ok := materialIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.materialService.Delete(c.Request.Context(), user, id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("Material deleted"))
}
