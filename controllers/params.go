package controllers

import (
	"strconv"

	"takeout/pkg/resp"

	"github.com/gin-gonic/gin"
)

// paramID อ่าน :id จาก path ถ้าไม่ใช่ตัวเลขบวกจะตอบ 400 ให้เลย
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
