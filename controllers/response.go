package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"status":  "error",
		"message": message,
	})
}

func respondInternal(c *gin.Context) {
	respondError(c, http.StatusInternalServerError, "Something broke!")
}
