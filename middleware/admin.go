package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"propertyhub-backend/utils"
)

const AdminKeyHeader = "X-Admin-Key"

// AdminKey guards the admin routes when key is non-empty.
func AdminKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		got := c.GetHeader(AdminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			utils.JSONAbort(c, http.StatusUnauthorized, "Admin key required")
			return
		}
		c.Next()
	}
}
