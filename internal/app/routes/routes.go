package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hkmu/coursehub/internal/app/controllers"
	"github.com/hkmu/coursehub/internal/app/web"
	"github.com/hkmu/coursehub/internal/middleware"
)

// SetupRouter configures all application routes: the server-rendered web
// surface and the /api/v1 JSON surface.
func SetupRouter(
	router *gin.Engine,
	webHandlers *web.Handlers,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	reviewController *controllers.ReviewController,
	materialController *controllers.MaterialController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- Web surface (session cookie auth) ---
	pages := router.Group("")
	pages.Use(authMiddleware.SessionLoad())
	{
		pages.GET("/", webHandlers.Home)
		pages.GET("/courses", webHandlers.CourseList)
		pages.GET("/courses/:code", webHandlers.CourseDetail)

		auth := pages.Group("/auth")
		{
			auth.GET("/login", webHandlers.LoginPage)
			auth.GET("/google", webHandlers.GoogleLogin)
			auth.GET("/google/callback", webHandlers.GoogleCallback)
			auth.POST("/logout", webHandlers.Logout)
		}

		loggedIn := pages.Group("")
		loggedIn.Use(authMiddleware.RequireLogin())
		{
			loggedIn.GET("/courses/:code/reviews/new", webHandlers.NewReviewPage)
			loggedIn.POST("/courses/:code/reviews", webHandlers.CreateReview)
			loggedIn.GET("/reviews/:id/edit", webHandlers.EditReviewPage)
			loggedIn.POST("/reviews/:id/edit", webHandlers.UpdateReview)
			loggedIn.POST("/reviews/:id/delete", webHandlers.DeleteReview)
			loggedIn.POST("/reviews/:id/helpful", webHandlers.MarkHelpful)

			loggedIn.GET("/courses/:code/materials/new", webHandlers.UploadMaterialPage)
			loggedIn.POST("/courses/:code/materials", webHandlers.UploadMaterial)
			loggedIn.GET("/materials/:id/download", webHandlers.DownloadMaterial)
			loggedIn.POST("/materials/:id/delete", webHandlers.DeleteMaterial)

			admin := loggedIn.Group("")
			admin.Use(authMiddleware.RequireAdmin())
			{
				admin.GET("/courses/new", webHandlers.NewCoursePage)
				admin.POST("/courses", webHandlers.CreateCourse)
				admin.GET("/courses/:code/edit", webHandlers.EditCoursePage)
				admin.POST("/courses/:code/edit", webHandlers.UpdateCourse)
				admin.POST("/courses/:code/delete", webHandlers.DeleteCourse)
			}
		}
	}

	// --- JSON API surface (/api/v1, bearer token auth) ---
	v1 := router.Group("/api/v1")

	// Token minting rides the web session; everything else uses the token.
	sessionAuth := v1.Group("/auth")
	sessionAuth.Use(authMiddleware.SessionLoad())
	{
		sessionAuth.POST("/token", authController.IssueToken)
	}

	apiAuth := v1.Group("/auth")
	apiAuth.Use(authMiddleware.JWTAuth())
	{
		apiAuth.GET("/me", authController.Me)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.GET("/top", courseController.TopCourses)
		courses.GET("/:code", courseController.GetCourse)

		coursesAdmin := courses.Group("")
		coursesAdmin.Use(authMiddleware.JWTAuth(), authMiddleware.AdminRequired())
		{
			coursesAdmin.POST("", courseController.CreateCourse)
			coursesAdmin.PUT("/:code", courseController.UpdateCourse)
			coursesAdmin.DELETE("/:code", courseController.DeleteCourse)
		}
	}

	reviews := v1.Group("/reviews")
	{
		reviews.GET("", reviewController.ListReviews)
		reviews.GET("/recent", reviewController.RecentReviews)
		reviews.GET("/instructor/:name", reviewController.ReviewsByInstructor)
		reviews.GET("/:id", reviewController.GetReview)
		reviews.POST("/:id/helpful", reviewController.MarkHelpful)

		reviewsProtected := reviews.Group("")
		reviewsProtected.Use(authMiddleware.JWTAuth())
		{
			reviewsProtected.POST("", reviewController.CreateReview)
			reviewsProtected.PUT("/:id", reviewController.UpdateReview)
			reviewsProtected.DELETE("/:id", reviewController.DeleteReview)
		}
	}

	materials := v1.Group("/materials")
	{
		materials.GET("", materialController.ListMaterials)
		materials.GET("/:id", materialController.GetMaterial)
		materials.GET("/:id/download", materialController.DownloadMaterial)

		materialsProtected := materials.Group("")
		materialsProtected.Use(authMiddleware.JWTAuth())
		{
			materialsProtected.POST("", materialController.UploadMaterial)
			materialsProtected.DELETE("/:id", materialController.DeleteMaterial)
		}
	}

	v1.GET("/stats/difficulty", reviewController.DifficultyDistribution)

	// Unknown web paths get the HTML 404; the rest of the tree is JSON.
	router.NoRoute(authMiddleware.SessionLoad(), webHandlers.NotFound)
}
