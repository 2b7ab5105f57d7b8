package handlers

import "github.com/gin-gonic/gin"

func respondMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"msg": msg})
}
