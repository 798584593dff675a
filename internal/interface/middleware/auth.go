package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"blogcore/pkg/helpers"
	"blogcore/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth validates the access-token cookie and checks that an active session
// still exists in Redis. On success the caller's user id lands in the Gin
// context; everything downstream treats that id as the caller identity.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		if rdb != nil {
			key := "user:session:" + claims.UserID
			data, err := rdb.HGetAll(c.Request.Context(), key).Result()
			if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
				resp := response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
				c.AbortWithStatusJSON(resp.Status, resp)
				return
			}
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
