package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"healthqueue-be/internal/token"
)

// AuthMiddleware validates the Bearer session token and puts the
// authenticated user's identity into the request context. Handlers behind it
// read "user_id" instead of consulting any ambient session state. A token
// revoked by logout is refused even while its expiry is still in the future.
func AuthMiddleware(tokens *token.Service, denylist token.Denylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing or invalid authorization header",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, email, err := tokens.ValidateSessionToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		if denylist != nil && denylist.IsRevoked(c.Request.Context(), tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set("user_id", userID)
		c.Set("email", email)
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user ID set by AuthMiddleware.
func CurrentUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	userID, ok := value.(int64)
	return userID, ok
}
