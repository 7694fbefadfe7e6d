package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hkmu/coursehub/internal/middleware"
	"github.com/hkmu/coursehub/internal/pkg/logger"
	"github.com/hkmu/coursehub/internal/pkg/session"
)

const stateCookieName = "oauth_state"

// LoginPage renders the sign-in page. Already signed-in users go straight
// to the course list.
// GET /auth/login
func (h *Handlers) LoginPage(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/courses")
		return
	}
	h.render(c, http.StatusOK, "login.html", gin.H{
		"Title": "Sign In",
	})
}

// GoogleLogin starts the OAuth code flow: random state in a short-lived
// cookie, then off to the consent screen.
// GET /auth/google
func (h *Handlers) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(stateCookieName, state, int(10*time.Minute.Seconds()), "/", "", h.secureCookie, true)
	c.Redirect(http.StatusFound, h.services.Auth.AuthURL(state))
}

// GoogleCallback completes the flow: checks the CSRF state, exchanges the
// code, creates the session and sets the session cookie.
// GET /auth/google/callback
func (h *Handlers) GoogleCallback(c *gin.Context) {
	expectedState, err := c.Cookie(stateCookieName)
	c.SetCookie(stateCookieName, "", -1, "/", "", h.secureCookie, true)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn().Str("ip", c.ClientIP()).Msg("OAuth state mismatch")
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	code := c.Query("code")
	if code == "" {
		// User cancelled on the consent screen.
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	user, err := h.services.Auth.HandleCallback(c.Request.Context(), code)
	if err != nil {
		logger.Error().Err(err).Msg("OAuth callback failed")
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	sid, err := h.sessions.Create(c.Request.Context(), &session.Session{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Photo:    user.Photo,
		IsAdmin:  user.IsAdmin,
		IssuedAt: time.Now(),
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create session")
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	c.SetCookie(h.cookieName, sid, h.cookieMaxAge, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusFound, "/courses")
}

// Logout deletes the server-side session and clears the cookie.
// POST /auth/logout
func (h *Handlers) Logout(c *gin.Context) {
	if sid, ok := middleware.SessionID(c); ok {
		if err := h.sessions.Delete(c.Request.Context(), sid); err != nil {
			logger.Warn().Err(err).Msg("Failed to delete session")
		}
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusFound, "/")
}
