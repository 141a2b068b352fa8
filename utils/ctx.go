package utils

import "github.com/gin-gonic/gin"

// ค่าพวกนี้ AuthMiddleware เป็นคน set

func CurrentUserID(c *gin.Context) uint {
	return c.GetUint("userId")
}

func CurrentRole(c *gin.Context) string {
	return c.GetString("role")
}
