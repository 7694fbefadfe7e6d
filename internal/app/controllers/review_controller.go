package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hkmu/coursehub/internal/app/models/dto"
	"github.com/hkmu/coursehub/internal/app/services"
	"github.com/hkmu/coursehub/internal/middleware"
	"github.com/hkmu/coursehub/internal/pkg/apperrors"
	"github.com/hkmu/coursehub/internal/pkg/helpers"
)

// ReviewController handles the JSON API for reviews.
type ReviewController struct {
	reviewService *services.ReviewService
}

// NewReviewController creates a new ReviewController.
func NewReviewController(reviewService *services.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

func parseReviewFilter(c *gin.Context) dto.ReviewFilter {
	filter := dto.ReviewFilter{
		CourseCode: c.Query("courseCode"),
		Semester:   c.Query("semester"),
		Instructor: c.Query("instructor"),
		Sort:       c.Query("sort"),
	}
	if raw := c.Query("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filter.Year = &v
		}
	}
	if raw := c.Query("minRating"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinRating = &v
		}
	}
	if raw := c.Query("userId"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.UserID = &v
		}
	}
	return filter
}

func reviewIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		middleware.HandleAPIError(c, apperrors.NewValidationError("Invalid review id"))
		return 0, false
	}
	return id, true
}

// ListReviews returns a filtered, paginated review page.
// GET /api/v1/reviews
func (ctrl *ReviewController) ListReviews(c *gin.Context) {
	page, size := helpers.ParsePaginationParams(c)
	filter := parseReviewFilter(c)

	reviews, total, err := ctrl.reviewService.List(c.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	pagination := helpers.NewPaginationInfo(total, page, size)
	c.JSON(http.StatusOK, dto.NewPagedResponse(reviews, len(reviews), pagination))
}

// GetReview returns a single review.
// GET /api/v1/reviews/:id
func (ctrl *ReviewController) GetReview(c *gin.Context) {
	id, ok := reviewIDParam(c)
	if !ok {
		return
	}

	review, err := ctrl.reviewService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(review))
}

// CreateReview submits a review as the authenticated user.
// POST /api/v1/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	review, err := ctrl.reviewService.Create(c.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(review))
}

// UpdateReview edits a review owned by the caller, or any review for admins.
// PUT /api/v1/reviews/:id
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	id, ok := reviewIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	review, err := ctrl.reviewService.Update(c.Request.Context(), user, id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(review))
}

// DeleteReview removes a review owned by the caller, or any review for
// admins.
// DELETE /api/v1/reviews/:id
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	id, ok := reviewIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.reviewService.Delete(c.Request.Context(), user, id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("Review deleted"))
}

// MarkHelpful increments a review's helpful counter.
// POST /api/v1/reviews/:id/helpful
func (ctrl *ReviewController) MarkHelpful(c *gin.Context) {
	id, ok := reviewIDParam(c)
	if !ok {
		return
	}

	review, err := ctrl.reviewService.MarkHelpful(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(review))
}

// DifficultyDistribution returns how many reviews sit at each difficulty
// level, 1 through 5.
// GET /api/v1/stats/difficulty
func (ctrl *ReviewController) DifficultyDistribution(c *gin.Context) {
	distribution, err := ctrl.reviewService.DifficultyDistribution(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(distribution))
}

// RecentReviews returns the newest reviews across all courses.
// GET /api/v1/reviews/recent
func (ctrl *ReviewController) RecentReviews(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	reviews, err := ctrl.reviewService.Recent(c.Request.Context(), limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(reviews, len(reviews)))
}

// ReviewsByInstructor returns reviews for one instructor across all courses.
func (ctrl *ReviewController) ReviewsByInstructor(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	reviews, err := ctrl.reviewService.ByInstructor(c.Request.Context(), c.Param("name"), limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(reviews, len(reviews)))
}
