package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hkmu/coursehub/internal/app/models"
	"github.com/hkmu/coursehub/internal/app/services"
	"github.com/hkmu/coursehub/internal/middleware"
	"github.com/hkmu/coursehub/internal/pkg/logger"
	"github.com/hkmu/coursehub/internal/pkg/session"
)

// Handlers renders the server-side HTML pages. Errors surface as flash
// banners after a redirect rather than error pages, except for missing
// resources which get a plain 404 page.
type Handlers struct {
	services     *services.Services
	sessions     *session.Store
	cookieName   string
	cookieMaxAge int
	secureCookie bool
}

// NewHandlers creates the web handler set.
func NewHandlers(svcs *services.Services, sessions *session.Store, cookieName string, sessionTTL time.Duration, secureCookie bool) *Handlers {
	return &Handlers{
		services:     svcs,
		sessions:     sessions,
		cookieName:   cookieName,
		cookieMaxAge: int(sessionTTL.Seconds()),
		secureCookie: secureCookie,
	}
}

// render executes a page template with the shared chrome data merged in:
// the signed-in user and any pending flash messages.
func (h *Handlers) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	if user, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = user
	}
	if sid, ok := middleware.SessionID(c); ok {
		flashes, err := h.sessions.PopFlashes(c.Request.Context(), sid)
		if err == nil && len(flashes) > 0 {
			data["Flashes"] = flashes
		}
	}

	c.HTML(status, name, data)
}

// flashAndRedirect queues a one-shot banner and sends the browser on.
// Guests have no session to carry the flash; they just get the redirect.
func (h *Handlers) flashAndRedirect(c *gin.Context, kind, message, location string) {
	if sid, ok := middleware.SessionID(c); ok {
		if err := h.sessions.AddFlash(c.Request.Context(), sid, kind, message); err != nil {
			logger.Warn().Err(err).Msg("Failed to store flash message")
		}
	}
	c.Redirect(http.StatusFound, location)
}

// NotFound renders the 404 page.
func (h *Handlers) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "404.html", gin.H{
		"Title": "Page Not Found",
	})
}

func mustUser(c *gin.Context) *models.User {
	user, _ := middleware.CurrentUser(c)
	return user
}
