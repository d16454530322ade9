package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mercadoscout/pkg/apierr"
)

// ContextUserIDKey is the gin context key holding the verified subject
const ContextUserIDKey = "userID"

// TokenVerifier verifies a bearer token and returns the subject user id
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// RequireAuth validates the Authorization header and stores the verified user
// id in the request context
func RequireAuth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			e := apierr.New(apierr.KindTokenMissing, "missing or malformed Authorization header")
			c.AbortWithStatusJSON(e.HTTPStatus(), gin.H{"error": e.Message})
			return
		}

		userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			status := http.StatusUnauthorized
			message := "invalid token"
			var e *apierr.Error
			if errors.As(err, &e) {
				status = e.HTTPStatus()
				message = e.Message
			}
			c.AbortWithStatusJSON(status, gin.H{"error": message})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}
