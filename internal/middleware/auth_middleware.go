package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hkmu/coursehub/internal/app/models"
	"github.com/hkmu/coursehub/internal/app/models/dto"
	"github.com/hkmu/coursehub/internal/pkg/auth"
	"github.com/hkmu/coursehub/internal/pkg/session"
)

// Context keys shared between middleware and handlers.
const (
	ContextUserKey    = "currentUser"
	ContextSessionKey = "sessionID"
)

// AuthMiddleware for authentication and authorization on both surfaces:
// bearer tokens for the JSON API, session cookies for the web pages.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	sessions   *session.Store
	cookieName string
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(jwtService *auth.JWTService, sessions *session.Store, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// JWTAuth validates the Authorization header and puts the authenticated user
// on the context. API routes behind this middleware can assume CurrentUser
// succeeds.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Authentication required"))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Invalid authorization header"))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, &models.User{
			ID:      claims.UserID,
			Email:   claims.Email,
			Name:    claims.Name,
			IsAdmin: claims.IsAdmin,
		})
		c.Next()
	}
}

// AdminRequired rejects non-admin API callers. Must run after JWTAuth.
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse("Authentication required"))
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("Admin access required"))
			return
		}
		c.Next()
	}
}

// SessionLoad resolves the session cookie, if any, and puts the signed-in
// user on the context. It never aborts; pages render for guests too.
func (m *AuthMiddleware) SessionLoad() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(m.cookieName)
		if err != nil || sid == "" {
			c.Next()
			return
		}

		sess, err := m.sessions.Get(c.Request.Context(), sid)
		if err != nil {
			// Stale cookie, clear it so the browser stops sending it.
			c.SetCookie(m.cookieName, "", -1, "/", "", false, true)
			c.Next()
			return
		}

		c.Set(ContextSessionKey, sid)
		c.Set(ContextUserKey, &models.User{
			ID:      sess.UserID,
			Email:   sess.Email,
			Name:    sess.Name,
			Photo:   sess.Photo,
			IsAdmin: sess.IsAdmin,
		})
		c.Next()
	}
}

// RequireLogin redirects guests to the sign-in page. Must run after
// SessionLoad.
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin blocks non-admin users from admin web pages. Must run after
// RequireLogin.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin {
			c.Redirect(http.StatusFound, "/courses")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed on the context by
// JWTAuth or SessionLoad.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// SessionID returns the session id of a web request, when present.
func SessionID(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return "", false
	}
	sid, ok := value.(string)
	return sid, ok
}
