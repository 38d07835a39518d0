package httpapi

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/furari-app/furari/internal/common"
	"github.com/furari-app/furari/internal/server/auth"
)

// userIDKey is the gin context key the auth middleware stores the
// authenticated user id under.
const userIDKey = "userID"

// AuthRequired validates the Bearer token and stores the user id in the
// request context. Expired tokens are distinguished from invalid ones so
// clients know when a refresh will help.
func AuthRequired(secretKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(c, common.ErrorUnauthorized)
			return
		}

		userID, err := auth.GetUserIDFromToken(token, secretKey)
		if err != nil {
			writeError(c, err)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
