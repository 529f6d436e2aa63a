package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the acting user's ID in the Gin context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// actorHeader carries the acting staff user's id, set by the authenticating
// gateway in front of this service. Authentication itself is out of scope here;
// the core only needs the actor for audit attribution.
const actorHeader = "X-User-ID"

// ActorMiddleware extracts the acting user id from the gateway header and stores
// it in the request context. Requests without an actor are rejected since every
// transition must be attributable.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(actorHeader)
		if actor == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + actorHeader + " header"})
			return
		}
		c.Set(string(userIDKey), actor)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), userIDKey, actor))
		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDCtxVal := c.Request.Context().Value(userIDKey)
		if userIDCtxVal != nil {
			return userIDCtxVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
