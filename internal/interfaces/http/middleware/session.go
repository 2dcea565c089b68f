package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Session context keys and headers
const (
	SessionIDKey     = "session_id"
	SessionIDHeader  = "X-Session-ID"
	sessionIDCookie  = "storefront_session"
	sessionCookieAge = 60 * 60 * 24 * 30 // 30 days, store TTL governs actual lifetime
)

// VisitorSession assigns each storefront visitor a stable session id.
// An existing id is taken from the X-Session-ID header or the session
// cookie; first-time visitors get a fresh one. The id is echoed back on
// both the header and the cookie so any client style can carry it.
func VisitorSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(SessionIDHeader))
		if sessionID == "" {
			if cookie, err := c.Cookie(sessionIDCookie); err == nil {
				sessionID = strings.TrimSpace(cookie)
			}
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		c.Set(SessionIDKey, sessionID)
		c.Writer.Header().Set(SessionIDHeader, sessionID)
		c.SetCookie(sessionIDCookie, sessionID, sessionCookieAge, "/", "", false, true)

		c.Next()
	}
}

// GetSessionID retrieves the visitor session id from gin.Context
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
