package middleware

import (
	"net/http"
	"strings"

	"wayfare/utils"

	"github.com/gin-gonic/gin"
)

// ParticipantIDKey is the context key holding the authenticated actor id.
const ParticipantIDKey = "participantID"

// Auth validates the bearer token and stores the participant id for
// handlers to use as the acting party.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		participantID, err := utils.ExtractSubjectFromToken(tokenString)
		if err != nil || participantID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set(ParticipantIDKey, participantID)
		c.Next()
	}
}

// ActorID returns the authenticated participant id set by Auth.
func ActorID(c *gin.Context) string {
	return c.GetString(ParticipantIDKey)
}
