package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"video-hosting/pkg/auth"
	"video-hosting/pkg/models"
)

const userKey = "user"

// UserLoader resolves the user a token refers to.
type UserLoader interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Protect verifies the bearer token and attaches the referenced user to the
// request context. Any failure short-circuits with a 401.
func Protect(tokens *auth.Manager, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			logrus.WithError(err).Warn("token verification failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}

		id, err := primitive.ObjectIDFromHex(claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), id)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// Admin rejects non-admin callers. It must run after Protect.
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Not authorized as admin"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user Protect attached, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
