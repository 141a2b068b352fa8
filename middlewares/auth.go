package middlewares

import (
	"net/http"
	"strings"

	"takeout/utils"

	"github.com/gin-gonic/gin"
)

// ใช้ตรวจ token และ (ถ้ามี) บังคับ role
func AuthMiddleware(secret string, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing or invalid token"})
			return
		}
		authorize(c, strings.TrimPrefix(h, "Bearer "), secret, requiredRoles)
	}
}

func authorize(c *gin.Context, tokenStr, secret string, requiredRoles []string) {
	claims, err := utils.ParseToken(tokenStr, secret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
		return
	}

	c.Set("userId", claims.UserID)
	c.Set("role", claims.Role)
	c.Set("claims", claims)

	if len(requiredRoles) > 0 {
		allowed := false
		for _, r := range requiredRoles {
			if claims.Role == r {
				allowed = true
				break
			}
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "forbidden"})
			return
		}
	}

	c.Next()
}
