package forwarder

import (
	"github.com/gin-gonic/gin"

	"github.com/zija9452/dashboard-frontend-sub001/internal/session"
)

// Relay forwards the inbound gin request to the given backend route and writes
// the backend's response, or the normalized error envelope, back to the browser.
func (f *Forwarder) Relay(c *gin.Context, route Route) {
	req := Request{
		Method:      c.Request.Method,
		Query:       c.Request.URL.RawQuery,
		Body:        c.Request.Body,
		ContentType: c.ContentType(),
		Cookie:      CookieFrom(c),
	}

	res, envErr := f.Do(c.Request.Context(), route, req)
	if envErr != nil {
		c.JSON(envErr.Status, envErr)
		return
	}

	contentType := res.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(res.Status, contentType, res.Body)
}

// CookieFrom prefers the session context placed by the session middleware and
// falls back to the raw header for routes mounted outside the guard (login).
func CookieFrom(c *gin.Context) string {
	if v, ok := c.Get(session.ContextKey); ok {
		if s, ok := v.(session.Session); ok {
			return s.CookieHeader
		}
	}
	return c.GetHeader("Cookie")
}

// WriteEnvelope lets handlers emit the same failure shape the forwarder
// produces, so client-side validation errors and forwarding errors look
// identical to the dashboard.
func WriteEnvelope(c *gin.Context, status int, msg string) {
	c.JSON(status, Envelope{Error: msg, Status: status})
}

// Abort is WriteEnvelope for middleware.
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Envelope{Error: msg, Status: status})
}
