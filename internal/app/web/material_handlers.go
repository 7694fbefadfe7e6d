package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hkmu/coursehub/internal/app/models"
	"github.com/hkmu/coursehub/internal/app/models/dto"
	"github.com/hkmu/coursehub/internal/pkg/apperrors"
)

// UploadMaterialPage renders the upload form for a course.
// GET /courses/:code/materials/new
func (h *Handlers) UploadMaterialPage(c *gin.Context) {
	course, err := h.services.Course.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.NotFound(c)
		return
	}

	h.render(c, http.StatusOK, "material_form.html", gin.H{
		"Title":         "Upload Material",
		"Course":        course,
		"MaterialTypes": models.MaterialTypes,
		"Semesters":     models.Semesters,
		"Action":        "/courses/" + course.Code + "/materials",
	})
}

// UploadMaterial handles the multipart upload form.
// POST /courses/:code/materials
func (h *Handlers) UploadMaterial(c *gin.Context) {
	code := c.Param("code")
	user := mustUser(c)

	year, _ := strconv.Atoi(c.PostForm("year"))
	req := dto.UploadMaterialRequest{
		CourseCode:  code,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Type:        c.PostForm("type"),
		Semester:    c.PostForm("semester"),
		Year:        year,
	}

	formPath := "/courses/" + code + "/materials/new"
	if len(req.Title) < 3 || len(req.Title) > 200 {
		h.flashAndRedirect(c, "error", "Title must be 3 to 200 characters", formPath)
		return
	}
	if year < models.MinYear || year > models.MaxYear {
		h.flashAndRedirect(c, "error", "Year must be between 2020 and 2030", formPath)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		h.flashAndRedirect(c, "error", apperrors.ErrFileMissing.Error(), formPath)
		return
	}

	_, err = h.services.Material.Upload(c.Request.Context(), user, &req, file)
	if err != nil {
		h.flashAndRedirect(c, "error", userMessage(err, "Could not upload material"), formPath)
		return
	}

	h.flashAndRedirect(c, "success", "Material uploaded", "/courses/"+code)
}

// DownloadMaterial streams the stored file to the browser and counts the
// download.
// GET /materials/:id/download
func (h *Handlers) DownloadMaterial(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.NotFound(c)
		return
	}

	material, err := h.services.Material.Download(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrMaterialNotFound) {
			h.NotFound(c)
			return
		}
		h.flashAndRedirect(c, "error", "Could not download material", "/courses")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", material.FileName))
	c.Data(http.StatusOK, material.FileType, material.FileData)
}

// DeleteMaterial removes a material. Uploader or admin.
// POST /materials/:id/delete
func (h *Handlers) DeleteMaterial(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.NotFound(c)
		return
	}

	user := mustUser(c)
	material, err := h.services.Material.GetByID(c.Request.Context(), id)
	if err != nil {
		h.NotFound(c)
		return
	}

	if err := h.services.Material.Delete(c.Request.Context(), user, id); err != nil {
		h.flashAndRedirect(c, "error", userMessage(err, "Could not delete material"), "/courses/"+material.CourseCode)
		return
	}

	h.flashAndRedirect(c, "success", "Material deleted", "/courses/"+material.CourseCode)
}
