package routes

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hkmu/coursehub/internal/app/controllers"
	"github.com/hkmu/coursehub/internal/app/web"
	"github.com/hkmu/coursehub/internal/middleware"
)

// newTestRouter wires the route tree with empty dependencies. Requests that
// fail an auth gate abort in middleware, so the handlers behind the gates
// are never reached.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRouter(
		router,
		web.NewHandlers(nil, nil, "sid", time.Hour, false),
		controllers.NewAuthController(nil),
		controllers.NewCourseController(nil),
		controllers.NewReviewController(nil),
		controllers.NewMaterialController(nil),
		middleware.NewAuthMiddleware(nil, nil, "sid"),
	)
	return router
}

func TestGuestsAreRedirectedFromProtectedPages(t *testing.T) {
	router := newTestRouter()

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/materials/1/download"},
		{"GET", "/courses/COMP3500SEF/reviews/new"},
		{"GET", "/courses/COMP3500SEF/materials/new"},
		{"POST", "/reviews/1/delete"},
		{"GET", "/courses/new"},
	}

	for _, tt := range paths {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, 302, recorder.Code)
			assert.Equal(t, "/auth/login", recorder.Header().Get("Location"))
		})
	}
}

func TestAPIMutationsRequireBearerToken(t *testing.T) {
	router := newTestRouter()

	paths := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/courses"},
		{"POST", "/api/v1/reviews"},
		{"PUT", "/api/v1/reviews/1"},
		{"POST", "/api/v1/materials"},
		{"DELETE", "/api/v1/materials/1"},
	}

	for _, tt := range paths {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, 401, recorder.Code)
		})
	}
}
