package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"finance_api/internal/domain"
	"finance_api/internal/utils"

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// CurrentUserKey is where the middleware stores the resolved caller.
const CurrentUserKey = "currentUser"

// TokenAuthMiddleware validates the bearer token and resolves the calling
// user once per request. A token only counts as valid while its row in the
// access-token store exists; logout deletes those rows, so a revoked token
// fails here even if its signature still verifies.
func TokenAuthMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "missing or invalid authorization header")
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		var token domain.AccessToken
		if err := db.Where("token = ? AND user_id = ?", tokenStr, claims.UserID).First(&token).Error; err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		var user domain.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		c.Set(CurrentUserKey, &user) // Resolved caller for downstream handlers
		c.Next()
	}
}

// abortUnauthorized stops the chain with the 401 error envelope.
func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status": false,
		"error": gin.H{
			"code":    http.StatusUnauthorized,
			"message": msg,
		},
	})
}
