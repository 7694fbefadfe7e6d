package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hkmu/coursehub/internal/app/models"
	"github.com/hkmu/coursehub/internal/app/models/dto"
	"github.com/hkmu/coursehub/internal/middleware"
	"github.com/hkmu/coursehub/internal/pkg/apperrors"
	"github.com/hkmu/coursehub/internal/pkg/helpers"
)

// splitList parses a comma-separated form field into trimmed items.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func parseCourseListQuery(c *gin.Context) dto.CourseFilter {
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

// Home renders the landing page with the top-rated courses and the newest
// reviews.
// GET /
func (h *Handlers) Home(c *gin.Context) {
	ctx := c.Request.Context()

	topCourses, err := h.services.Course.TopRated(ctx, 6)
	if err != nil {
		topCourses = nil
	}
	recentReviews, err := h.services.Review.Recent(ctx, 6)
	if err != nil {
		recentReviews = nil
	}

	h.render(c, http.StatusOK, "home.html", gin.H{
		"Title":         "HKMU CourseHub",
		"TopCourses":    topCourses,
		"RecentReviews": recentReviews,
	})
}

// CourseList renders the filterable course catalogue.
// GET /courses
func (h *Handlers) CourseList(c *gin.Context) {
	page, size := helpers.ParsePaginationParams(c)
	filter := parseCourseListQuery(c)

	courses, total, err := h.services.Course.List(c.Request.Context(), filter, page, size)
	if err != nil {
		h.flashAndRedirect(c, "error", "Could not load courses", "/")
		return
	}

	h.render(c, http.StatusOK, "courses.html", gin.H{
		"Title":      "Courses",
		"Courses":    courses,
		"Filter":     filter,
		"Programs":   models.Programs,
		"Pagination": helpers.NewPaginationInfo(total, page, size),
		"Query":      c.Request.URL.RawQuery,
	})
}

// CourseDetail renders one course with its reviews and materials.
// GET /courses/:code
func (h *Handlers) CourseDetail(c *gin.Context) {
	ctx := c.Request.Context()
	code := c.Param("code")

	course, err := h.services.Course.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			h.NotFound(c)
			return
		}
		h.flashAndRedirect(c, "error", "Could not load course", "/courses")
		return
	}

	page, size := helpers.ParsePaginationParams(c)
	reviewFilter := dto.ReviewFilter{CourseCode: course.Code, Sort: c.Query("sort")}
	reviews, totalReviews, err := h.services.Review.List(ctx, reviewFilter, page, size)
	if err != nil {
		reviews = nil
	}

	materials, err := h.services.Material.ByCourse(ctx, course.Code)
	if err != nil {
		materials = nil
	}

	var reviewed bool
	if user, ok := middleware.CurrentUser(c); ok {
		for _, r := range reviews {
			if r.UserID == user.ID {
				reviewed = true
				break
			}
		}
	}

	h.render(c, http.StatusOK, "course_detail.html", gin.H{
		"Title":           course.Code + " " + course.Name,
		"Course":          course,
		"Reviews":         reviews,
		"Materials":       materials,
		"AlreadyReviewed": reviewed,
		"Pagination":      helpers.NewPaginationInfo(totalReviews, page, size),
	})
}

// NewCoursePage renders the course creation form. Admin only.
// GET /courses/new
func (h *Handlers) NewCoursePage(c *gin.Context) {
	h.render(c, http.StatusOK, "course_form.html", gin.H{
		"Title":    "Add Course",
		"Programs": models.Programs,
		"Action":   "/courses",
	})
}

// CreateCourse handles the course creation form. Admin only.
// POST /courses
func (h *Handlers) CreateCourse(c *gin.Context) {
	req := dto.CreateCourseRequest{
		CourseCode:    c.PostForm("courseCode"),
		CourseName:    c.PostForm("courseName"),
		Program:       c.PostForm("program"),
		Description:   c.PostForm("description"),
		Prerequisites: splitList(c.PostForm("prerequisites")),
		Instructors:   splitList(c.PostForm("instructors")),
	}
	req.Credits, _ = strconv.Atoi(c.PostForm("credits"))

	course, err := h.services.Course.Create(c.Request.Context(), &req)
	if err != nil {
		h.flashAndRedirect(c, "error", userMessage(err, "Could not create course"), "/courses/new")
		return
	}

	h.flashAndRedirect(c, "success", "Course created", "/courses/"+course.Code)
}

// EditCoursePage renders the course edit form. Admin only.
// GET /courses/:code/edit
func (h *Handlers) EditCoursePage(c *gin.Context) {
	course, err := h.services.Course.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.NotFound(c)
		return
	}

	h.render(c, http.StatusOK, "course_form.html", gin.H{
		"Title":    "Edit " + course.Code,
		"Course":   course,
		"Programs": models.Programs,
		"Action":   "/courses/" + course.Code + "/edit",
	})
}

// UpdateCourse handles the course edit form. Admin only.
// POST /courses/:code/edit
func (h *Handlers) UpdateCourse(c *gin.Context) {
	code := c.Param("code")
	req := dto.UpdateCourseRequest{
		CourseName:    c.PostForm("courseName"),
		Program:       c.PostForm("program"),
		Description:   c.PostForm("description"),
		Prerequisites: splitList(c.PostForm("prerequisites")),
		Instructors:   splitList(c.PostForm("instructors")),
	}
	req.Credits, _ = strconv.Atoi(c.PostForm("credits"))

	course, err := h.services.Course.Update(c.Request.Context(), code, &req)
	if err != nil {
		h.flashAndRedirect(c, "error", userMessage(err, "Could not update course"), "/courses/"+code+"/edit")
		return
	}

	h.flashAndRedirect(c, "success", "Course updated", "/courses/"+course.Code)
}

// DeleteCourse removes a course and everything attached to it. Admin only.
// POST /courses/:code/delete
func (h *Handlers) DeleteCourse(c *gin.Context) {
	code := c.Param("code")
	if err := h.services.Course.Delete(c.Request.Context(), code); err != nil {
		h.flashAndRedirect(c, "error", userMessage(err, "Could not delete course"), "/courses/"+code)
		return
	}
	h.flashAndRedirect(c, "success", "Course deleted", "/courses")
}

// userMessage extracts a message safe to show users, falling back when the
// error is not one of ours.
func userMessage(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		return custom.Error()
	}
	switch {
	case errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrReviewNotFound),
		errors.Is(err, apperrors.ErrMaterialNotFound),
		errors.Is(err, apperrors.ErrCourseAlreadyExists),
		errors.Is(err, apperrors.ErrDuplicateReview),
		errors.Is(err, apperrors.ErrPermissionDenied),
		errors.Is(err, apperrors.ErrFileTooLarge),
		errors.Is(err, apperrors.ErrFileTypeInvalid),
		errors.Is(err, apperrors.ErrFileMissing):
		for {
			unwrapped := errors.Unwrap(err)
			if unwrapped == nil {
				return err.Error()
			}
			err = unwrapped
		}
	}
	return fallback
}
