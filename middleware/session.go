package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orca-backend/models"
	"orca-backend/service"
)

const userKey = "orca.user"

// RequireSession rejects the request with 401 while no founder is signed in.
// The profile is stored on the context for handlers that need it.
func RequireSession(session *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := session.Current(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SESSION_UNAVAILABLE",
					"message": err.Error(),
				},
			})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHENTICATED",
					"message": "Sign in to continue",
				},
			})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// User returns the profile attached by RequireSession
func User(c *gin.Context) *models.UserProfile {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.UserProfile)
	return user
}
