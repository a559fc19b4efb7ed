package middleware

import (
	"net/http"
	"strings"

	"campusconnect/internal/auth"
	"campusconnect/internal/models"
	"campusconnect/internal/repository"

	"github.com/gin-gonic/gin"
)

const principalKey = "user"

// AuthMiddleware resolves the bearer token into an authenticated user and
// attaches it to the request context. A missing header, a bad or expired
// token, and a token for a user that no longer exists all map to 401; callers
// never learn which it was.
func AuthMiddleware(userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized to access this route",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized to access this route",
			})
			c.Abort()
			return
		}

		userID, err := auth.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized to access this route",
			})
			c.Abort()
			return
		}

		user, err := userRepo.GetUserByID(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized to access this route",
			})
			c.Abort()
			return
		}

		c.Set(principalKey, user)
		c.Next()
	}
}

// RequireRoles gates a route to the given roles. Must run after
// AuthMiddleware; without a principal the request is rejected.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Access denied",
			})
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "User role " + user.Role + " is not authorized to access this route",
		})
		c.Abort()
	}
}

// CurrentUser returns the principal attached by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
