package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/legal-intake-api/internal/models"
	appErrors "github.com/noah-isme/legal-intake-api/pkg/errors"
	"github.com/noah-isme/legal-intake-api/pkg/logger"
	"github.com/noah-isme/legal-intake-api/pkg/response"
)

// ContextUserKey is the gin context key storing the staff member's claims.
const ContextUserKey = "currentUser"

// TokenVerifier validates bearer tokens issued by the identity provider.
type TokenVerifier interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// JWT admits staff requests. Every activity entry records performedBy, so
// a token that verifies but names no subject is rejected as well.
func JWT(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			reject(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing or malformed bearer token"))
			return
		}

		claims, err := verifier.ValidateToken(token)
		if err != nil {
			reject(c, err)
			return
		}
		if claims.ActorID() == "" {
			reject(c, appErrors.Clone(appErrors.ErrUnauthorized, "token does not identify a staff member"))
			return
		}

		c.Set(ContextUserKey, claims)
		c.Set(logger.ActorKey, claims.ActorID())
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func reject(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}
