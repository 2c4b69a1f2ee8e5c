package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerKey      = "X-Request-ID"
	correlationKey = "X-Correlation-ID"
	contextKey     = "request_id"
	maxLength      = 128
)

// Middleware tags each request with an id that the access log and error
// envelopes echo back. An id forwarded by an upstream proxy is reused only
// when it is short and made of token characters; anything else is replaced.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := ""
		for _, candidate := range []string{c.GetHeader(headerKey), c.GetHeader(correlationKey)} {
			if valid(candidate) {
				reqID = candidate
				break
			}
		}
		if reqID == "" {
			reqID = uuid.NewString()
		}

		c.Set(contextKey, reqID)
		c.Writer.Header().Set(headerKey, reqID)
		c.Next()
	}
}

// Value returns the request id, or "" outside the middleware.
func Value(c *gin.Context) string {
	return c.GetString(contextKey)
}

func valid(id string) bool {
	if id == "" || len(id) > maxLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':':
		default:
			return false
		}
	}
	return true
}
