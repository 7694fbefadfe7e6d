package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hkmu/coursehub/internal/app/models"
	"github.com/hkmu/coursehub/internal/app/models/dto"
	"github.com/hkmu/coursehub/internal/pkg/apperrors"
)

// NewReviewPage renders the review submission form for a course.
// GET /courses/:code/reviews/new
func (h *Handlers) NewReviewPage(c *gin.Context) {
	course, err := h.services.Course.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.NotFound(c)
		return
	}

	h.render(c, http.StatusOK, "review_form.html", gin.H{
		"Title":     "Review " + course.Code,
		"Course":    course,
		"Semesters": models.Semesters,
		"Grades":    models.Grades,
		"Action":    "/courses/" + course.Code + "/reviews",
	})
}

func reviewFormBody(c *gin.Context) dto.CreateReviewRequest {
	rating, _ := strconv.Atoi(c.PostForm("rating"))
	difficulty, _ := strconv.Atoi(c.PostForm("difficulty"))
	workload, _ := strconv.Atoi(c.PostForm("workload"))
	year, _ := strconv.Atoi(c.PostForm("year"))

	return dto.CreateReviewRequest{
		Semester:   c.PostForm("semester"),
		Year:       year,
		Instructor: c.PostForm("instructor"),
		Rating:     rating,
		Difficulty: difficulty,
		Workload:   workload,
		Grade:      c.PostForm("grade"),
		ReviewText: c.PostForm("reviewText"),
		Pros:       splitList(c.PostForm("pros")),
		Cons:       splitList(c.PostForm("cons")),
		Tips:       c.PostForm("tips"),
	}
}

// CreateReview handles the review submission form.
// POST /courses/:code/reviews
func (h *Handlers) CreateReview(c *gin.Context) {
	code := c.Param("code")
	user := mustUser(c)

	body := reviewFormBody(c)
	body.CourseCode = code

	if msg, ok := validateReviewForm(&body); !ok {
		h.flashAndRedirect(c, "error", msg, "/courses/"+code+"/reviews/new")
		return
	}

	_, err := h.services.Review.Create(c.Request.Context(), user, &body)
	if err != nil {
		h.flashAndRedirect(c, "error", userMessage(err, "Could not submit review"), "/courses/"+code+"/reviews/new")
		return
	}

	h.flashAndRedirect(c, "success", "Review submitted", "/courses/"+code)
}

// EditReviewPage renders the review edit form. Owner or admin.
// GET /reviews/:id/edit
func (h *Handlers) EditReviewPage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.NotFound(c)
		return
	}

	review, err := h.services.Review.GetByID(c.Request.Context(), id)
	if err != nil {
		h.NotFound(c)
		return
	}

	user := mustUser(c)
	if review.UserID != user.ID && !user.IsAdmin {
		h.flashAndRedirect(c, "error", "You can only edit your own reviews", "/courses/"+review.CourseCode)
		return
	}

	h.render(c, http.StatusOK, "review_form.html", gin.H{
		"Title":     "Edit Review",
		"Review":    review,
		"Semesters": models.Semesters,
		"Grades":    models.Grades,
		"Action":    "/reviews/" + c.Param("id") + "/edit",
	})
}

// UpdateReview handles the review edit form. Owner or admin.
// POST /reviews/:id/edit
func (h *Handlers) UpdateReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.NotFound(c)
		return
	}

	user := mustUser(c)
	body := reviewFormBody(c)

	if msg, ok := validateReviewForm(&body); !ok {
		h.flashAndRedirect(c, "error", msg, "/reviews/"+c.Param("id")+"/edit")
		return
	}

	update := dto.UpdateReviewRequest{
		Semester:   body.Semester,
		Year:       body.Year,
		Instructor: body.Instructor,
		Rating:     body.Rating,
		Difficulty: body.Difficulty,
		Workload:   body.Workload,
		Grade:      body.Grade,
		ReviewText: body.ReviewText,
		Pros:       body.Pros,
		Cons:       body.Cons,
		Tips:       body.Tips,
	}

	review, err := h.services.Review.Update(c.Request.Context(), user, id, &update)
	if err != nil {
		h.flashAndRedirect(c, "error", userMessage(err, "Could not update review"), "/reviews/"+c.Param("id")+"/edit")
		return
	}

	h.flashAndRedirect(c, "success", "Review updated", "/courses/"+review.CourseCode)
}

// DeleteReview removes a review. Owner or admin.
// POST /reviews/:id/delete
func (h *Handlers) DeleteReview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.NotFound(c)
		return
	}

	user := mustUser(c)
	review, err := h.services.Review.GetByID(c.Request.Context(), id)
	if err != nil {
		h.NotFound(c)
		return
	}

	if err := h.services.Review.Delete(c.Request.Context(), user, id); err != nil {
		h.flashAndRedirect(c, "error", userMessage(err, "Could not delete review"), "/courses/"+review.CourseCode)
		return
	}

	h.flashAndRedirect(c, "success", "Review deleted", "/courses/"+review.CourseCode)
}

// MarkHelpful increments the helpful counter and returns to the course page.
// POST /reviews/:id/helpful
func (h *Handlers) MarkHelpful(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.NotFound(c)
		return
	}

	review, err := h.services.Review.MarkHelpful(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrReviewNotFound) {
			h.NotFound(c)
			return
		}
		h.flashAndRedirect(c, "error", "Could not record vote", "/courses")
		return
	}

	c.Redirect(http.StatusFound, "/courses/"+review.CourseCode)
}

// validateReviewForm runs the form checks gin binding would perform on the
// JSON surface, so both entry points enforce the same bounds.
func validateReviewForm(body *dto.CreateReviewRequest) (string, bool) {
	switch {
	case body.Semester == "":
		return "Semester is required", false
	case body.Year < models.MinYear || body.Year > models.MaxYear:
		return "Year must be between 2020 and 2030", false
	case len(body.Instructor) < 2 || len(body.Instructor) > 100:
		return "Instructor name must be 2 to 100 characters", false
	case body.Rating < models.MinRating || body.Rating > models.MaxRating:
		return "Rating must be between 1 and 5", false
	case body.Difficulty < models.MinRating || body.Difficulty > models.MaxRating:
		return "Difficulty must be between 1 and 5", false
	case body.Workload < models.MinRating || body.Workload > models.MaxRating:
		return "Workload must be between 1 and 5", false
	case len(body.ReviewText) < 50 || len(body.ReviewText) > 2000:
		return "Review text must be 50 to 2000 characters", false
	}
	return "", true
}
