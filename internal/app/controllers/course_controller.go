package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hkmu/coursehub/internal/app/models/dto"
	"github.com/hkmu/coursehub/internal/app/services"
	"github.com/hkmu/coursehub/internal/middleware"
	"github.com/hkmu/coursehub/internal/pkg/helpers"
)

// CourseController handles the JSON API for courses.
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController.
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// parseCourseFilter reads the supported course query parameters.
func parseCourseFilter(c *gin.Context) dto.CourseFilter {
	filter := dto.CourseFilter{
		Search:     c.Query("search"),
		Program:    c.Query("program"),
		Difficulty: c.Query("difficulty"),
		Instructor: c.Query("instructor"),
		Sort:       c.Query("sort"),
	}
	if raw := c.Query("minRating"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinRating = &v
		}
	}
	return filter
}

// ListCourses returns a filtered, paginated course page.
// GET /api/v1/courses
func (ctrl *CourseController) ListCourses(c *gin.Context) {
	page, size := helpers.ParsePaginationParams(c)
	filter := parseCourseFilter(c)

	courses, total, err := ctrl.courseService.List(c.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	pagination := helpers.NewPaginationInfo(total, page, size)
	c.JSON(http.StatusOK, dto.NewPagedResponse(courses, len(courses), pagination))
}

// GetCourse returns a single course by its code.
// GET /api/v1/courses/:code
func (ctrl *CourseController) GetCourse(c *gin.Context) {
	course, err := ctrl.courseService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// CreateCourse creates a new course. Admin only.
// POST /api/v1/courses
func (ctrl *CourseController) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	course, err := ctrl.courseService.Create(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// UpdateCourse updates a course's editable fields. Admin only.
// PUT /api/v1/courses/:code
func (ctrl *CourseController) UpdateCourse(c *gin.Context) {
	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	course, err := ctrl.courseService.Update(c.Request.Context(), c.Param("code"), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// DeleteCourse removes a course together with its reviews and materials.
// Admin only.
// DELETE /api/v1/courses/:code
func (ctrl *CourseController) DeleteCourse(c *gin.Context) {
	if err := ctrl.courseService.Delete(c.Request.Context(), c.Param("code")); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("Course deleted"))
}

// TopCourses returns the highest-rated reviewed courses.
// GET /api/v1/courses/top
func (ctrl *CourseController) TopCourses(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	courses, err := ctrl.courseService.TopRated(c.Request.Context(), limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(courses, len(courses)))
}
