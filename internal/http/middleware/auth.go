package middleware

import (
	"net/http"
	"strings"

	"ridesboard/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey      = "session"
	sessionErrorKey = "session_error"
)

// TokenParser turns a bearer token into the caller's identity.
type TokenParser interface {
	Parse(token string) (domain.RequestContext, error)
}

// Session reads an optional bearer token. A bad token does not fail the
// request here; RequireSession reports it on routes that need identity.
func Session(p TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := bearerToken(c.GetHeader("Authorization"))
		if tok != "" && p != nil {
			rc, err := p.Parse(tok)
			if err != nil {
				c.Set(sessionErrorKey, err)
			} else {
				c.Set(sessionKey, rc)
			}
		}
		c.Next()
	}
}

// RequireSession aborts with 401 unless Session found a valid token.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(sessionKey); !ok {
			abortAuth(c, http.StatusUnauthorized, "unauthorized", "session required")
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts unless the session carries the admin flag.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, ok := GetRequestContext(c)
		if !ok {
			abortAuth(c, http.StatusUnauthorized, "unauthorized", "session required")
			return
		}
		if !rc.IsAdmin {
			abortAuth(c, http.StatusForbidden, "forbidden", "admin only")
			return
		}
		c.Next()
	}
}

// GetRequestContext returns the identity stored by Session.
func GetRequestContext(c *gin.Context) (domain.RequestContext, bool) {
	if c == nil {
		return domain.RequestContext{}, false
	}
	if v, ok := c.Get(sessionKey); ok {
		if rc, ok := v.(domain.RequestContext); ok {
			return rc, true
		}
	}
	return domain.RequestContext{}, false
}

func bearerToken(h string) string {
	h = strings.TrimSpace(h)
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

func abortAuth(c *gin.Context, status int, code, msg string) {
	payload := gin.H{"error": msg, "code": code, "message": msg, "request_id": GetRequestID(c)}
	if err, ok := c.Get(sessionErrorKey); ok {
		if e, ok := err.(error); ok {
			payload["details"] = e.Error()
		}
	}
	c.AbortWithStatusJSON(status, payload)
}
