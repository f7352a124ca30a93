package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/queueless/queueless-api/internal/logger"
	"github.com/queueless/queueless-api/internal/service"
)

const (
	// HeaderSessionID is the HTTP header carrying the session ID.
	HeaderSessionID = "X-Session-ID"

	// SessionCookieName is the fallback cookie for browser clients.
	SessionCookieName = "session_id"

	// SessionContextKey is the gin context key holding the resolved session.
	SessionContextKey = "session"
)

// Session resolves or creates the anonymous session for every request. The
// session ID comes from the X-Session-ID header, falling back to the
// session_id cookie; unknown or absent IDs get a fresh session. The
// resolved session is stored in the gin context and its ID attached to the
// request logger.
func Session(store *service.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(HeaderSessionID)
		if sessionID == "" {
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				sessionID = cookie
			}
		}

		sess := store.GetOrCreate(sessionID)

		// Hand a fresh ID back to clients that did not present one
		if sess.ID != sessionID {
			c.Header(HeaderSessionID, sess.ID)
			c.SetCookie(SessionCookieName, sess.ID, 0, "/", "", false, true)
		}

		ctx := logger.WithSessionID(c.Request.Context(), sess.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(SessionContextKey, sess)

		c.Next()
	}
}

// GetSession returns the session resolved by the Session middleware.
func GetSession(c *gin.Context) (*service.Session, bool) {
	v, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*service.Session)
	return sess, ok
}
